package service

import "context"

// HookContext carries the per-branch context exported to post-sync
// scripts through the environment.

type HookContext struct {
	TagName    string
	BranchName string
	ClonePath  string
}

// HookService runs post-sync scripts. Scripts are opaque executables:
// the engine only guarantees invocation order, the context fields, and
// that a failing script never stops later scripts or later tags.

type HookService interface {
	// Run executes the scripts sequentially, each to completion, with the
	// working copy as working directory. It returns one message per
	// failed script, in invocation order.
	Run(ctx context.Context, scripts []string, hctx HookContext) []string
}
