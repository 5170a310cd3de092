package service

import (
	"context"

	"github.com/forkops/tagsync/internal/domain"
)

// PatchService resolves a patch document and applies it to a working copy.

type PatchService interface {
	// Resolve fetches the patch document from url. It returns nil when no
	// url is configured; resolution happens once per run today, but the
	// signature allows per-tag re-resolution for templated locations.
	Resolve(ctx context.Context, url string) (*domain.Patch, error)
	// Apply applies the patch to the working copy at workdir and stages
	// the result. A conflict or malformed patch surfaces as a
	// domain.PatchError.
	Apply(ctx context.Context, workdir string, patch *domain.Patch) error
}
