package cmd

import (
	"fmt"

	"github.com/forkops/tagsync/internal/orchestrator"
	"github.com/forkops/tagsync/internal/repository"
	"github.com/spf13/cobra"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd(c *container) *cobra.Command {
	var (
		syncCIOutput bool
		syncDebug    bool
	)
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync new upstream tags into fork branches",
		Long: `Sync discovers tags present in the base repository that have no
corresponding branch in the head repository, materializes each one as a
branch, optionally applies the configured patch, and pushes the result.

Per-tag failures (patch conflicts, rejected pushes, failing hooks) are
reported but never abort the run; the discovered-tags and synced-branches
state files are written on every run, even when empty.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyFlagOverrides(cmd, c.cfg)
			if err := c.cfg.ValidateForSync(); err != nil {
				return err
			}
			log, err := c.logger(syncDebug)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer log.Sync() //nolint:errcheck // stderr sync failure is harmless

			hosting, err := repository.NewGithubRepository(c.cfg.GithubToken)
			if err != nil {
				return err
			}
			gitRepo := repository.NewGitRepository(c.cfg.ClonePath(), c.cfg.GithubToken)
			recorder := repository.NewFileStateRecorder(c.fs, c.cfg.DiscoveredTagsPath(), c.cfg.SyncedBranchesPath())

			orch := orchestrator.NewSyncOrchestrator(
				c.cfg,
				hosting,
				gitRepo,
				c.patchSvc,
				c.hookSvc,
				recorder,
				log,
			)
			// Per-tag failures are in the report, not the exit code.
			_, err = orch.Execute(cmd.Context(), orchestrator.SyncConfig{CIOutput: syncCIOutput})
			return err
		},
	}

	cmd.Flags().BoolVar(&syncCIOutput, "ci-output", false, "Output in CI-friendly format")
	cmd.Flags().BoolVar(&syncDebug, "debug", false, "Enable debug logging")
	registerConfigFlags(cmd, c.cfg)
	return cmd
}
