package repository

import (
	"context"

	"github.com/forkops/tagsync/internal/domain"
)

// HostingRepository defines the hosting API operations the sync engine
// needs: listing refs on both repositories and resolving clone URLs.

type HostingRepository interface {
	ListTags(ctx context.Context, ref domain.RepositoryRef) ([]domain.Tag, error)
	ListBranches(ctx context.Context, ref domain.RepositoryRef) ([]string, error)
	CloneURL(ctx context.Context, ref domain.RepositoryRef) (string, error)
}
