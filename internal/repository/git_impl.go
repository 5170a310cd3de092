package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forkops/tagsync/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
)

const (
	originRemote   = "origin"
	upstreamRemote = "upstream"
)

// gitRepository is the implementation of the GitRepository interface
// backed by go-git.
type gitRepository struct {
	path  string
	token string
	repo  *git.Repository
}

// NewGitRepository creates a GitRepository rooted at path. The working
// copy does not need to exist yet; CloneOrOpen materializes it.
func NewGitRepository(path, token string) GitRepository {
	return &gitRepository{path: path, token: token}
}

// Path returns the working copy location on disk.
func (r *gitRepository) Path() string {
	return r.path
}

// getAuth returns token authentication for the head remote.
func (r *gitRepository) getAuth() *http.BasicAuth {
	if r.token == "" {
		return nil
	}
	// Use x-access-token as username for GitHub token authentication
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: r.token,
	}
}

// CloneOrOpen clones the head repository, or opens and refreshes an
// existing clone restored from cache. The base repository is wired up as
// the "upstream" remote either way.
func (r *gitRepository) CloneOrOpen(ctx context.Context, headURL, baseURL string) error {
	repo, err := git.PlainOpen(r.path)
	switch err {
	case nil:
		r.repo = repo
		if err := r.setRemoteURL(originRemote, headURL); err != nil {
			return err
		}
		if err := r.fetchOrigin(ctx); err != nil {
			return err
		}
	case git.ErrRepositoryNotExists:
		err := withTransientRetry(ctx, func(ctx context.Context) error {
			var cloneErr error
			repo, cloneErr = git.PlainCloneContext(ctx, r.path, false, &git.CloneOptions{
				URL:  headURL,
				Auth: r.getAuth(),
			})
			return cloneErr
		})
		if err != nil {
			return fmt.Errorf("failed to clone %s: %w", headURL, err)
		}
		r.repo = repo
	default:
		return fmt.Errorf("failed to open working copy at %s: %w", r.path, err)
	}
	return r.setRemoteURL(upstreamRemote, baseURL)
}

// setRemoteURL creates the remote or points an existing one at url.
func (r *gitRepository) setRemoteURL(name, url string) error {
	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if err == nil {
		return nil
	}
	if err != git.ErrRemoteExists {
		return fmt.Errorf("failed to create remote %s: %w", name, err)
	}
	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	cfg.Remotes[name].URLs = []string{url}
	return r.repo.Storer.SetConfig(cfg)
}

// fetchOrigin refreshes a cached clone so branch tips are current.
func (r *gitRepository) fetchOrigin(ctx context.Context) error {
	remote, err := r.repo.Remote(originRemote)
	if err != nil {
		return fmt.Errorf("failed to get remote %s: %w", originRemote, err)
	}
	err = withTransientRetry(ctx, func(ctx context.Context) error {
		fetchErr := remote.FetchContext(ctx, &git.FetchOptions{
			RefSpecs: []config.RefSpec{
				config.RefSpec("+refs/heads/*:refs/remotes/origin/*"),
			},
			Auth: r.getAuth(),
		})
		if fetchErr == git.NoErrAlreadyUpToDate {
			return nil
		}
		return fetchErr
	})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", originRemote, err)
	}
	return nil
}

// FetchTags fetches only the given tags from the base repository.
func (r *gitRepository) FetchTags(ctx context.Context, tags []string) error {
	if len(tags) == 0 {
		return nil
	}
	remote, err := r.repo.Remote(upstreamRemote)
	if err != nil {
		return fmt.Errorf("failed to get remote %s: %w", upstreamRemote, err)
	}
	refspecs := make([]config.RefSpec, 0, len(tags))
	for _, tag := range tags {
		refspecs = append(refspecs, config.RefSpec(fmt.Sprintf("+refs/tags/%s:refs/tags/%s", tag, tag)))
	}
	err = withTransientRetry(ctx, func(ctx context.Context) error {
		fetchErr := remote.FetchContext(ctx, &git.FetchOptions{
			RefSpecs: refspecs,
			Tags:     git.NoTags,
		})
		if fetchErr == git.NoErrAlreadyUpToDate {
			return nil
		}
		return fetchErr
	})
	if err != nil {
		return fmt.Errorf("failed to fetch tags from %s: %w", upstreamRemote, err)
	}
	return nil
}

// resolveTagCommit resolves a tag reference to its commit hash,
// handling both lightweight and annotated tags.
func (r *gitRepository) resolveTagCommit(tagRef *plumbing.Reference) (plumbing.Hash, error) {
	if commit, err := r.repo.CommitObject(tagRef.Hash()); err == nil {
		return commit.Hash, nil
	}
	if tagObj, err := r.repo.TagObject(tagRef.Hash()); err == nil {
		if commit, err := r.repo.CommitObject(tagObj.Target); err == nil {
			return commit.Hash, nil
		}
	}
	return plumbing.Hash{}, fmt.Errorf("failed to resolve commit for tag %s", tagRef.Name().Short())
}

// CheckoutTagBranch creates the tag's branch at the tag commit and checks
// it out. A leftover local branch from a previous attempt is reset to the
// tag commit; the force checkout discards any residue of a failed patch.
func (r *gitRepository) CheckoutTagBranch(_ context.Context, tag string) error {
	tagRef, err := r.repo.Tag(tag)
	if err != nil {
		return fmt.Errorf("failed to find tag %s: %w", tag, err)
	}
	commitHash, err := r.resolveTagCommit(tagRef)
	if err != nil {
		return err
	}
	branchRef := plumbing.NewBranchReferenceName(tag)
	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(branchRef, commitHash)); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", tag, err)
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: branchRef, Force: true}); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", tag, err)
	}
	return nil
}

// CommitAll stages all pending changes and commits them with the given
// metadata.
func (r *gitRepository) CommitAll(_ context.Context, info domain.CommitInfo) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	now := time.Now()
	_, err = wt.Commit(info.Message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  info.Author.Name,
			Email: info.Author.Email,
			When:  now,
		},
		Committer: &object.Signature{
			Name:  info.Committer.Name,
			Email: info.Committer.Email,
			When:  now,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create commit: %w", err)
	}
	return nil
}

// PushBranch pushes the branch to the head repository. Non-fast-forward
// rejections surface as domain.ErrRemoteRejected so an existing,
// unrelated branch is never overwritten.
func (r *gitRepository) PushBranch(ctx context.Context, branch string) error {
	refspec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	err := withTransientRetry(ctx, func(ctx context.Context) error {
		pushErr := r.repo.PushContext(ctx, &git.PushOptions{
			RemoteName: originRemote,
			RefSpecs:   []config.RefSpec{refspec},
			Auth:       r.getAuth(),
		})
		if pushErr == git.NoErrAlreadyUpToDate {
			return nil
		}
		return pushErr
	})
	if err != nil {
		if isNonFastForward(err) {
			return fmt.Errorf("push of %s rejected: %w", branch, domain.ErrRemoteRejected)
		}
		return fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	return nil
}

// isNonFastForward detects go-git's remote rejection of a push that would
// rewrite an existing branch.
func isNonFastForward(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "non-fast-forward update")
}
