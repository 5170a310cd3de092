package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

const (
	// StateFilePermissions defines the permissions for state files
	StateFilePermissions = 0644
	// LockTimeout defines the maximum time to wait for a lock
	LockTimeout = 30 * time.Second
	// LockRetryInterval defines the interval between lock retry attempts
	LockRetryInterval = 100 * time.Millisecond
)

// StateRecorder persists the per-run discovered-tags and synced-branches
// lists to durable, caller-readable locations. Both files are written on
// every run, empty when there is nothing to report, so external consumers
// can rely on their existence. The discovered-tags file doubles as the
// cache key input for the working-copy cache, so it is recorded right
// after discovery, before any sync work can fail.
type StateRecorder interface {
	RecordDiscovered(ctx context.Context, tags []string) error
	RecordSynced(ctx context.Context, branches []string) error
}

// fileStateRecorder implements StateRecorder with newline-delimited plain
// text files, written atomically under a file lock so two concurrent jobs
// cannot interleave writes.
type fileStateRecorder struct {
	fs             afero.Fs
	discoveredPath string
	syncedPath     string
}

// NewFileStateRecorder creates a StateRecorder writing to the given paths.
func NewFileStateRecorder(fs afero.Fs, discoveredPath, syncedPath string) StateRecorder {
	return &fileStateRecorder{
		fs:             fs,
		discoveredPath: discoveredPath,
		syncedPath:     syncedPath,
	}
}

// RecordDiscovered writes the discovered-tags file. The file is written
// even when the list is empty: an empty file, not an absent one.
func (r *fileStateRecorder) RecordDiscovered(ctx context.Context, tags []string) error {
	if err := r.writeList(ctx, r.discoveredPath, tags); err != nil {
		return fmt.Errorf("failed to record discovered tags: %w", err)
	}
	return nil
}

// RecordSynced writes the synced-branches file, empty when nothing was
// pushed.
func (r *fileStateRecorder) RecordSynced(ctx context.Context, branches []string) error {
	if err := r.writeList(ctx, r.syncedPath, branches); err != nil {
		return fmt.Errorf("failed to record synced branches: %w", err)
	}
	return nil
}

func (r *fileStateRecorder) writeList(ctx context.Context, path string, names []string) error {
	lock := flock.New(path + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()
	locked, err := r.acquireLockWithContext(lockCtx, lock)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock within timeout")
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to unlock file: %v\n", unlockErr)
		}
	}()
	var content string
	if len(names) > 0 {
		content = strings.Join(names, "\n") + "\n"
	}
	// Write atomically using temp file
	tempFile := path + ".tmp"
	if err := afero.WriteFile(r.fs, tempFile, []byte(content), StateFilePermissions); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := r.fs.Rename(tempFile, path); err != nil {
		if removeErr := r.fs.Remove(tempFile); removeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to remove temp file: %v\n", removeErr)
		}
		return fmt.Errorf("failed to rename state file: %w", err)
	}
	return nil
}

// acquireLockWithContext attempts to acquire an exclusive lock with
// context support.
func (r *fileStateRecorder) acquireLockWithContext(ctx context.Context, lock *flock.Flock) (bool, error) {
	ticker := time.NewTicker(LockRetryInterval)
	defer ticker.Stop()
	for {
		locked, err := lock.TryLock()
		if err != nil {
			return false, err
		}
		if locked {
			return true, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}
