package service

import "time"

// Timeout constants for service operations
const (
	// DefaultPatchFetchTimeout is the timeout for downloading the patch document
	DefaultPatchFetchTimeout = 60 * time.Second
	// DefaultPatchApplyTimeout is the timeout for git apply runs
	DefaultPatchApplyTimeout = 2 * time.Minute
	// DefaultHookTimeout is the timeout for a single post-sync script
	DefaultHookTimeout = 10 * time.Minute
)
