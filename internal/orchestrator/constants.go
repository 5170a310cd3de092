package orchestrator

import (
	"time"

	"github.com/forkops/tagsync/internal/config"
)

var (
	// DefaultWorkflowTimeout bounds a whole sync run, matching the
	// surrounding CI job timeout.
	DefaultWorkflowTimeout = config.EnvDuration("WORKFLOW_TIMEOUT", 60*time.Minute, 5*time.Second)
)
