package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/forkops/tagsync/internal/config"
	"github.com/forkops/tagsync/internal/domain"
	"github.com/forkops/tagsync/internal/repository"
	"github.com/forkops/tagsync/internal/service"
	"github.com/forkops/tagsync/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncConfig contains per-invocation options for the sync workflow.
type SyncConfig struct {
	CIOutput bool
}

// SyncOrchestrator orchestrates a full tag synchronization run: discovery,
// filtering, per-tag branch materialization, state recording and hooks.
type SyncOrchestrator struct {
	cfg      *config.Config
	hosting  repository.HostingRepository
	gitRepo  repository.GitRepository
	patchSvc service.PatchService
	hookSvc  service.HookService
	recorder repository.StateRecorder
	log      *zap.Logger
}

// NewSyncOrchestrator creates a new sync orchestrator.
func NewSyncOrchestrator(
	cfg *config.Config,
	hosting repository.HostingRepository,
	gitRepo repository.GitRepository,
	patchSvc service.PatchService,
	hookSvc service.HookService,
	recorder repository.StateRecorder,
	log *zap.Logger,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		cfg:      cfg,
		hosting:  hosting,
		gitRepo:  gitRepo,
		patchSvc: patchSvc,
		hookSvc:  hookSvc,
		recorder: recorder,
		log:      log,
	}
}

// Execute runs the complete sync workflow and returns the per-tag report.
// Only configuration problems and total loss of connectivity to the
// repositories are fatal; everything per-tag is isolated inside the
// report.
func (o *SyncOrchestrator) Execute(ctx context.Context, runCfg SyncConfig) (*domain.SyncReport, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultWorkflowTimeout)
	defer cancel()

	baseRef, err := o.cfg.BaseRef()
	if err != nil {
		return nil, err
	}
	headRef, err := o.cfg.HeadRef()
	if err != nil {
		return nil, err
	}
	pattern, err := o.cfg.FilterRegexp()
	if err != nil {
		return nil, err
	}
	constraint, err := o.cfg.SemverConstraint()
	if err != nil {
		return nil, err
	}

	discoverUC := &usecase.DiscoverNewTagsUseCase{Hosting: o.hosting}
	discovered, err := discoverUC.Execute(ctx, baseRef, headRef)
	if err != nil {
		return nil, fmt.Errorf("failed to discover new tags: %w", err)
	}

	report := domain.NewSyncReport(uuid.New().String(), discovered)
	log := o.log.With(zap.String("run_id", report.RunID), zap.Stringer("base", baseRef), zap.Stringer("head", headRef))
	log.Info("discovered new tags", zap.Strings("tags", domain.TagNames(discovered)))

	// The discovered-tags file is written before any sync work so it
	// exists even when a later step fails; downstream cache keys hash it.
	if err := o.recorder.RecordDiscovered(ctx, domain.TagNames(discovered)); err != nil {
		return report, fmt.Errorf("failed to record discovered tags: %w", err)
	}

	filterUC := &usecase.FilterTagsUseCase{Pattern: pattern, Constraint: constraint}
	eligible := filterUC.Execute(discovered)
	o.recordFilteredOut(report, discovered, eligible)

	var syncErr error
	if len(eligible) > 0 {
		syncErr = o.syncTags(ctx, log, baseRef, headRef, eligible, report)
	} else {
		log.Info("nothing to sync")
	}

	// The synced-branches file is written on every run, even when empty
	// and even when the sync phase failed outright.
	if err := o.recorder.RecordSynced(ctx, report.SyncedBranches()); err != nil {
		if syncErr != nil {
			log.Error("failed to record synced branches", zap.Error(err))
		} else {
			return report, fmt.Errorf("failed to record synced branches: %w", err)
		}
	}
	if syncErr != nil {
		return report, syncErr
	}

	o.printCIOutput(runCfg.CIOutput, "discovered_tags=%s\n", strings.Join(domain.TagNames(report.Discovered), ","))
	o.printCIOutput(runCfg.CIOutput, "synced_branches=%s\n", strings.Join(report.SyncedBranches(), ","))

	synced, skipped, failed := report.Counts()
	log.Info("sync run completed",
		zap.Int("synced", synced),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
	return report, nil
}

// recordFilteredOut marks every discovered tag the filter rejected as
// skipped, so the report covers the whole discovered set.
func (o *SyncOrchestrator) recordFilteredOut(report *domain.SyncReport, discovered, eligible []domain.Tag) {
	kept := make(map[string]struct{}, len(eligible))
	for _, tag := range eligible {
		kept[tag.Name] = struct{}{}
	}
	for _, tag := range discovered {
		if _, ok := kept[tag.Name]; !ok {
			report.AddSkipped(tag, "filtered out")
		}
	}
}

// syncTags materializes each eligible tag as a branch. Errors returned
// from here abort the run; per-tag failures are recorded and swallowed.
func (o *SyncOrchestrator) syncTags(
	ctx context.Context,
	log *zap.Logger,
	baseRef, headRef domain.RepositoryRef,
	eligible []domain.Tag,
	report *domain.SyncReport,
) error {
	// The patch is resolved once per run; if the document cannot be
	// fetched, every eligible tag fails but the run still completes and
	// records its state.
	patch, err := o.patchSvc.Resolve(ctx, o.cfg.ApplyPatch)
	if err != nil {
		log.Error("failed to resolve patch", zap.Error(err))
		for _, tag := range eligible {
			report.AddFailed(tag, err)
		}
		return nil
	}

	headURL, err := o.hosting.CloneURL(ctx, headRef)
	if err != nil {
		return fmt.Errorf("failed to resolve head clone URL: %w", err)
	}
	baseURL, err := o.hosting.CloneURL(ctx, baseRef)
	if err != nil {
		return fmt.Errorf("failed to resolve base clone URL: %w", err)
	}
	if err := o.gitRepo.CloneOrOpen(ctx, headURL, baseURL); err != nil {
		return fmt.Errorf("failed to prepare working copy: %w", err)
	}
	if err := o.gitRepo.FetchTags(ctx, domain.TagNames(eligible)); err != nil {
		return fmt.Errorf("failed to fetch tags: %w", err)
	}

	scripts := o.cfg.Scripts()
	for _, tag := range eligible {
		// Cancellation is honored between tags; a started tag pipeline
		// runs to completion or failure.
		if ctx.Err() != nil {
			report.AddSkipped(tag, "run canceled")
			continue
		}
		tagLog := log.With(zap.String("tag", tag.Name), zap.String("branch", tag.BranchName()))
		if err := o.syncOne(ctx, tag, patch); err != nil {
			tagLog.Warn("tag sync failed", zap.Error(err))
			report.AddFailed(tag, err)
			continue
		}
		hookErrs := o.hookSvc.Run(ctx, scripts, service.HookContext{
			TagName:    tag.Name,
			BranchName: tag.BranchName(),
			ClonePath:  o.gitRepo.Path(),
		})
		for _, hookErr := range hookErrs {
			tagLog.Warn("post-sync hook failed", zap.String("failure", hookErr))
		}
		report.AddSynced(tag, hookErrs)
		tagLog.Info("branch synced")
	}
	return nil
}

// syncOne runs the per-tag pipeline: checkout, optional patch + commit,
// push. Any error is caught at the tag boundary by the caller.
func (o *SyncOrchestrator) syncOne(ctx context.Context, tag domain.Tag, patch *domain.Patch) error {
	if err := o.gitRepo.CheckoutTagBranch(ctx, tag.Name); err != nil {
		return fmt.Errorf("failed to checkout tag %s: %w", tag.Name, err)
	}
	if patch != nil {
		if err := o.patchSvc.Apply(ctx, o.gitRepo.Path(), patch); err != nil {
			return err
		}
		if err := o.gitRepo.CommitAll(ctx, o.cfg.CommitInfo()); err != nil {
			return &domain.PatchError{Stage: "commit", Err: err}
		}
	}
	return o.gitRepo.PushBranch(ctx, tag.BranchName())
}

// printCIOutput prints output in CI format if enabled
func (o *SyncOrchestrator) printCIOutput(ciOutput bool, format string, args ...any) {
	if ciOutput {
		fmt.Printf(format, args...)
	}
}
