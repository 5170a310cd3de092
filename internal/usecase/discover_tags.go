package usecase

import (
	"context"
	"fmt"

	"github.com/forkops/tagsync/internal/domain"
	"github.com/forkops/tagsync/internal/repository"
)

// DiscoverNewTagsUseCase computes which base repository tags have no
// corresponding branch in the head repository yet.

type DiscoverNewTagsUseCase struct {
	Hosting repository.HostingRepository
}

// Execute returns the base tags whose derived branch name is absent from
// the head repository, preserving the order the hosting API reported the
// tags in. When the base repository has no tags, the head repository is
// not queried at all.
func (uc *DiscoverNewTagsUseCase) Execute(
	ctx context.Context,
	base, head domain.RepositoryRef,
) ([]domain.Tag, error) {
	tags, err := uc.Hosting.ListTags(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to list base tags: %w", err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	branches, err := uc.Hosting.ListBranches(ctx, head)
	if err != nil {
		return nil, fmt.Errorf("failed to list head branches: %w", err)
	}
	existing := make(map[string]struct{}, len(branches))
	for _, branch := range branches {
		existing[branch] = struct{}{}
	}
	var fresh []domain.Tag
	for _, tag := range tags {
		if _, ok := existing[tag.BranchName()]; !ok {
			fresh = append(fresh, tag)
		}
	}
	return fresh, nil
}
