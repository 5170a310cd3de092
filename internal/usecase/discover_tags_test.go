package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/forkops/tagsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiscoverNewTagsUseCase_Execute(t *testing.T) {
	base := domain.RepositoryRef{Owner: "upstream", Name: "project"}
	head := domain.RepositoryRef{Owner: "fork", Name: "project"}

	t.Run("Should return tags without a matching head branch", func(t *testing.T) {
		hosting := new(mockHostingRepository)
		hosting.On("ListTags", mock.Anything, base).Return([]domain.Tag{
			{Name: "v1.0", SHA: "a"},
			{Name: "v1.1", SHA: "b"},
			{Name: "v2.0", SHA: "c"},
		}, nil)
		hosting.On("ListBranches", mock.Anything, head).Return([]string{"main", "v1.0"}, nil)

		uc := &DiscoverNewTagsUseCase{Hosting: hosting}
		fresh, err := uc.Execute(context.Background(), base, head)
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.1", "v2.0"}, domain.TagNames(fresh))
		hosting.AssertExpectations(t)
	})

	t.Run("Should return every tag when the head has no branches", func(t *testing.T) {
		hosting := new(mockHostingRepository)
		hosting.On("ListTags", mock.Anything, base).Return([]domain.Tag{
			{Name: "v1.0"}, {Name: "v2.0"},
		}, nil)
		hosting.On("ListBranches", mock.Anything, head).Return([]string{}, nil)

		uc := &DiscoverNewTagsUseCase{Hosting: hosting}
		fresh, err := uc.Execute(context.Background(), base, head)
		require.NoError(t, err)
		assert.Len(t, fresh, 2)
	})

	t.Run("Should not query branches when the base has no tags", func(t *testing.T) {
		hosting := new(mockHostingRepository)
		hosting.On("ListTags", mock.Anything, base).Return([]domain.Tag{}, nil)

		uc := &DiscoverNewTagsUseCase{Hosting: hosting}
		fresh, err := uc.Execute(context.Background(), base, head)
		require.NoError(t, err)
		assert.Empty(t, fresh)
		hosting.AssertNotCalled(t, "ListBranches", mock.Anything, mock.Anything)
	})

	t.Run("Should preserve the hosting API tag order", func(t *testing.T) {
		hosting := new(mockHostingRepository)
		hosting.On("ListTags", mock.Anything, base).Return([]domain.Tag{
			{Name: "v2.0"}, {Name: "v0.9"}, {Name: "v1.5"},
		}, nil)
		hosting.On("ListBranches", mock.Anything, head).Return([]string{"v0.9"}, nil)

		uc := &DiscoverNewTagsUseCase{Hosting: hosting}
		fresh, err := uc.Execute(context.Background(), base, head)
		require.NoError(t, err)
		assert.Equal(t, []string{"v2.0", "v1.5"}, domain.TagNames(fresh))
	})

	t.Run("Should propagate a tag listing failure", func(t *testing.T) {
		hosting := new(mockHostingRepository)
		hosting.On("ListTags", mock.Anything, base).Return(nil, errors.New("boom"))

		uc := &DiscoverNewTagsUseCase{Hosting: hosting}
		_, err := uc.Execute(context.Background(), base, head)
		assert.ErrorContains(t, err, "failed to list base tags")
	})

	t.Run("Should propagate a branch listing failure", func(t *testing.T) {
		hosting := new(mockHostingRepository)
		hosting.On("ListTags", mock.Anything, base).Return([]domain.Tag{{Name: "v1.0"}}, nil)
		hosting.On("ListBranches", mock.Anything, head).Return(nil, errors.New("boom"))

		uc := &DiscoverNewTagsUseCase{Hosting: hosting}
		_, err := uc.Execute(context.Background(), base, head)
		assert.ErrorContains(t, err, "failed to list head branches")
	})
}
