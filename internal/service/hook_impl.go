package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const githubActionsTrue = "true"

// hookService is the implementation of the HookService interface, running
// each script through bash.
type hookService struct {
	// timeout for a single script execution
	timeout time.Duration
}

// NewHookService creates a new HookService.
func NewHookService() HookService {
	return &hookService{
		timeout: DefaultHookTimeout,
	}
}

// Run executes the scripts in order. A non-zero exit is recorded and the
// remaining scripts still run.
func (s *hookService) Run(ctx context.Context, scripts []string, hctx HookContext) []string {
	var failures []string
	for i, script := range scripts {
		if err := s.runScript(ctx, script, hctx); err != nil {
			failures = append(failures, fmt.Sprintf("script %d: %v", i+1, err))
		}
	}
	return failures
}

func (s *hookService) runScript(ctx context.Context, script string, hctx HookContext) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", script)
	cmd.Dir = hctx.ClonePath
	cmd.Env = append(os.Environ(),
		"TAG_NAME="+hctx.TagName,
		"BRANCH_NAME="+hctx.BranchName,
		"CLONE_PATH="+hctx.ClonePath,
	)

	// Stream output in CI for visibility; capture stderr locally so a
	// failure detail carries the script's own diagnostics.
	var stderr bytes.Buffer
	if os.Getenv("GITHUB_ACTIONS") == githubActionsTrue {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("timed out after %v", s.timeout)
		}
		if detail := stderrTail(&stderr); detail != "" {
			return fmt.Errorf("exited with error: %w (stderr: %s)", err, detail)
		}
		return fmt.Errorf("exited with error: %w", err)
	}
	return nil
}

// stderrTail returns the trailing portion of the captured stderr, enough
// to diagnose a failure without flooding the report.
func stderrTail(buf *bytes.Buffer) string {
	const maxTail = 512
	detail := strings.TrimSpace(buf.String())
	if len(detail) > maxTail {
		detail = "..." + detail[len(detail)-maxTail:]
	}
	return detail
}
