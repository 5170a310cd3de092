package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"time"

	"github.com/forkops/tagsync/internal/domain"
	"github.com/sethvargo/go-retry"
)

// patchService is the implementation of the PatchService interface. The
// fetch goes over HTTP; the apply shells out to git, which go-git has no
// equivalent for.
type patchService struct {
	client       *http.Client
	fetchTimeout time.Duration
	applyTimeout time.Duration
}

// NewPatchService creates a new PatchService.
func NewPatchService() PatchService {
	return &patchService{
		client:       &http.Client{},
		fetchTimeout: DefaultPatchFetchTimeout,
		applyTimeout: DefaultPatchApplyTimeout,
	}
}

// Resolve downloads the patch document. Transient failures and 5xx
// responses are retried with bounded backoff; anything else fails
// immediately.
func (s *patchService) Resolve(ctx context.Context, url string) (*domain.Patch, error) {
	if url == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	var data []byte
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("server returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.PatchError{Stage: "fetch", Err: err}
	}
	if len(data) == 0 {
		return nil, &domain.PatchError{Stage: "fetch", Err: fmt.Errorf("patch document at %s is empty", url)}
	}
	return &domain.Patch{URL: url, Data: data}, nil
}

// Apply runs git apply in the working copy, staging the changes so the
// subsequent commit picks them up.
func (s *patchService) Apply(ctx context.Context, workdir string, patch *domain.Patch) error {
	if patch == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.applyTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", "apply", "--index", "--whitespace=nowarn")
	cmd.Dir = workdir
	cmd.Stdin = bytes.NewReader(patch.Data)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &domain.PatchError{Stage: "apply", Err: fmt.Errorf("timed out after %v", s.applyTimeout)}
		}
		errMsg := stderr.String()
		if errMsg != "" {
			return &domain.PatchError{Stage: "apply", Err: fmt.Errorf("%w (stderr: %s)", err, errMsg)}
		}
		return &domain.PatchError{Stage: "apply", Err: err}
	}
	return nil
}
