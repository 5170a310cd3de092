package usecase

import (
	"context"

	"github.com/forkops/tagsync/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockHostingRepository struct {
	mock.Mock
}

func (m *mockHostingRepository) ListTags(ctx context.Context, ref domain.RepositoryRef) ([]domain.Tag, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Tag), args.Error(1)
}

func (m *mockHostingRepository) ListBranches(ctx context.Context, ref domain.RepositoryRef) ([]string, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockHostingRepository) CloneURL(ctx context.Context, ref domain.RepositoryRef) (string, error) {
	args := m.Called(ctx, ref)
	return args.String(0), args.Error(1)
}
