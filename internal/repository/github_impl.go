package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/forkops/tagsync/internal/domain"
	"github.com/google/go-github/v74/github"
	"golang.org/x/oauth2"
)

const listPageSize = 100

// githubRepository is the implementation of the HostingRepository
// interface backed by the GitHub REST API.
type githubRepository struct {
	client *github.Client
}

// NewGithubRepository creates a new HostingRepository authenticated with
// the given token.
func NewGithubRepository(token string) (HostingRepository, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.NewConfigError("github_token", "cannot be empty")
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	return &githubRepository{client: github.NewClient(tc)}, nil
}

// ListTags returns all tags of the repository in API order, walking every
// page. The order is whatever the API reports; callers needing a stable
// order must sort explicitly.
func (r *githubRepository) ListTags(ctx context.Context, ref domain.RepositoryRef) ([]domain.Tag, error) {
	var tags []domain.Tag
	opts := &github.ListOptions{PerPage: listPageSize}
	for {
		var page []*github.RepositoryTag
		var resp *github.Response
		err := withTransientRetry(ctx, func(ctx context.Context) error {
			var err error
			page, resp, err = r.client.Repositories.ListTags(ctx, ref.Owner, ref.Name, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list tags of %s: %w", ref, err)
		}
		for _, t := range page {
			tags = append(tags, domain.Tag{
				Name: t.GetName(),
				SHA:  t.GetCommit().GetSHA(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return tags, nil
}

// ListBranches returns the names of all branches of the repository.
func (r *githubRepository) ListBranches(ctx context.Context, ref domain.RepositoryRef) ([]string, error) {
	var branches []string
	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: listPageSize}}
	for {
		var page []*github.Branch
		var resp *github.Response
		err := withTransientRetry(ctx, func(ctx context.Context) error {
			var err error
			page, resp, err = r.client.Repositories.ListBranches(ctx, ref.Owner, ref.Name, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list branches of %s: %w", ref, err)
		}
		for _, b := range page {
			branches = append(branches, b.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return branches, nil
}

// CloneURL resolves the HTTPS clone URL of the repository.
func (r *githubRepository) CloneURL(ctx context.Context, ref domain.RepositoryRef) (string, error) {
	var repo *github.Repository
	err := withTransientRetry(ctx, func(ctx context.Context) error {
		var err error
		repo, _, err = r.client.Repositories.Get(ctx, ref.Owner, ref.Name)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to get repository %s: %w", ref, err)
	}
	cloneURL := repo.GetCloneURL()
	if cloneURL == "" {
		return "", fmt.Errorf("repository %s has no clone URL", ref)
	}
	return cloneURL, nil
}
