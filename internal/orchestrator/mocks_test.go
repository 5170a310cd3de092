package orchestrator

import (
	"context"

	"github.com/forkops/tagsync/internal/domain"
	"github.com/forkops/tagsync/internal/service"
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

type mockGitRepository struct {
	mock.Mock
}

func (m *mockGitRepository) CloneOrOpen(ctx context.Context, headURL, baseURL string) error {
	return m.Called(ctx, headURL, baseURL).Error(0)
}

func (m *mockGitRepository) FetchTags(ctx context.Context, tags []string) error {
	return m.Called(ctx, tags).Error(0)
}

func (m *mockGitRepository) CheckoutTagBranch(ctx context.Context, tag string) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *mockGitRepository) CommitAll(ctx context.Context, info domain.CommitInfo) error {
	return m.Called(ctx, info).Error(0)
}

func (m *mockGitRepository) PushBranch(ctx context.Context, branch string) error {
	return m.Called(ctx, branch).Error(0)
}

func (m *mockGitRepository) Path() string {
	return m.Called().String(0)
}

type mockPatchService struct {
	mock.Mock
}

func (m *mockPatchService) Resolve(ctx context.Context, url string) (*domain.Patch, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Patch), args.Error(1)
}

func (m *mockPatchService) Apply(ctx context.Context, workdir string, patch *domain.Patch) error {
	return m.Called(ctx, workdir, patch).Error(0)
}

type mockHookService struct {
	mock.Mock
}

func (m *mockHookService) Run(ctx context.Context, scripts []string, hctx service.HookContext) []string {
	args := m.Called(ctx, scripts, hctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

type mockStateRecorder struct {
	mock.Mock
}

func (m *mockStateRecorder) RecordDiscovered(ctx context.Context, tags []string) error {
	return m.Called(ctx, tags).Error(0)
}

func (m *mockStateRecorder) RecordSynced(ctx context.Context, branches []string) error {
	return m.Called(ctx, branches).Error(0)
}
