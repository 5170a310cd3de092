package domain

import (
	"time"
)

// SyncStatus represents the terminal state of a single tag's pipeline.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusSkipped SyncStatus = "skipped"
	SyncStatusFailed  SyncStatus = "failed"
)

// TagOutcome records how a single discovered tag was handled.
type TagOutcome struct {
	Tag         Tag        `json:"tag"`
	Branch      string     `json:"branch"`
	Status      SyncStatus `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	Error       string     `json:"error,omitempty"`
	HookErrors  []string   `json:"hook_errors,omitempty"`
	CompletedAt time.Time  `json:"completed_at"`
}

// SyncReport aggregates the per-tag outcomes of a single run. It reflects
// exactly what this run observed and produced; the head repository's
// branch list remains the source of truth across runs.
type SyncReport struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	Discovered []Tag        `json:"discovered"`
	Outcomes   []TagOutcome `json:"outcomes"`
}

// NewSyncReport creates a report for a run over the given discovered tags.
func NewSyncReport(runID string, discovered []Tag) *SyncReport {
	return &SyncReport{
		RunID:      runID,
		StartedAt:  time.Now(),
		Discovered: discovered,
		Outcomes:   []TagOutcome{},
	}
}

// AddSynced records a successfully pushed branch. Hook failures are
// attached as outcome detail; they do not change the status.
func (r *SyncReport) AddSynced(tag Tag, hookErrs []string) {
	r.Outcomes = append(r.Outcomes, TagOutcome{
		Tag:         tag,
		Branch:      tag.BranchName(),
		Status:      SyncStatusSynced,
		HookErrors:  hookErrs,
		CompletedAt: time.Now(),
	})
}

// AddSkipped records a tag that was not processed, with the reason.
func (r *SyncReport) AddSkipped(tag Tag, reason string) {
	r.Outcomes = append(r.Outcomes, TagOutcome{
		Tag:         tag,
		Branch:      tag.BranchName(),
		Status:      SyncStatusSkipped,
		Reason:      reason,
		CompletedAt: time.Now(),
	})
}

// AddFailed records a tag whose pipeline failed. The failure is isolated
// to this tag; the run continues.
func (r *SyncReport) AddFailed(tag Tag, err error) {
	outcome := TagOutcome{
		Tag:         tag,
		Branch:      tag.BranchName(),
		Status:      SyncStatusFailed,
		CompletedAt: time.Now(),
	}
	if err != nil {
		outcome.Error = err.Error()
	}
	r.Outcomes = append(r.Outcomes, outcome)
}

// SyncedBranches returns the branch names pushed by this run, in outcome
// order.
func (r *SyncReport) SyncedBranches() []string {
	branches := make([]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Status == SyncStatusSynced {
			branches = append(branches, o.Branch)
		}
	}
	return branches
}

// Counts returns the number of synced, skipped and failed outcomes.
func (r *SyncReport) Counts() (synced, skipped, failed int) {
	for _, o := range r.Outcomes {
		switch o.Status {
		case SyncStatusSynced:
			synced++
		case SyncStatusSkipped:
			skipped++
		case SyncStatusFailed:
			failed++
		}
	}
	return synced, skipped, failed
}
