package domain

import (
	"errors"
	"fmt"
)

// ErrRemoteRejected indicates the remote refused a push because the branch
// already exists and the update is not a fast-forward. The existing branch
// is never overwritten.
var ErrRemoteRejected = errors.New("remote rejected non-fast-forward push")

// ConfigError is a fatal configuration problem detected before any tag
// processing starts.
type ConfigError struct {
	Field  string
	Reason string
}

// NewConfigError creates a ConfigError for the given input field.
func NewConfigError(field, reason string) *ConfigError {
	return &ConfigError{Field: field, Reason: reason}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %q: %s", e.Field, e.Reason)
}

// PatchError is a per-tag patch failure: fetching the patch document,
// applying it, or committing the result. It never aborts the run.
type PatchError struct {
	Stage string
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch %s failed: %v", e.Stage, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}
