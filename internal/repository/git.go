package repository

import (
	"context"

	"github.com/forkops/tagsync/internal/domain"
)

// GitRepository defines the operations performed against the head
// repository working copy. Implementations mutate a single working copy;
// callers must not interleave operations for different tags.

type GitRepository interface {
	// CloneOrOpen materializes the working copy. It is idempotent: an
	// existing clone (e.g. restored from cache) is opened and refreshed
	// instead of re-cloned.
	CloneOrOpen(ctx context.Context, headURL, baseURL string) error
	// FetchTags fetches the given tags from the base repository.
	FetchTags(ctx context.Context, tags []string) error
	// CheckoutTagBranch creates a local branch named after the tag at the
	// tag's commit and checks it out.
	CheckoutTagBranch(ctx context.Context, tag string) error
	// CommitAll stages every pending change and commits it.
	CommitAll(ctx context.Context, info domain.CommitInfo) error
	// PushBranch pushes the branch to the head repository. It fails with
	// domain.ErrRemoteRejected when the remote branch exists and the
	// update is not a fast-forward; it never force-pushes.
	PushBranch(ctx context.Context, branch string) error
	// Path returns the working copy location on disk.
	Path() string
}
