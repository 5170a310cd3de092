package repository

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/forkops/tagsync/internal/config"
	"github.com/google/go-github/v74/github"
	"github.com/sethvargo/go-retry"
)

// Retry settings for network operations against the hosting API, the
// remotes and the patch location. Exhausted retries escalate to the
// caller; non-transient failures (auth, not-found) fail immediately.
var (
	// RetryCount is the number of retries after the first attempt.
	RetryCount = uint64(config.EnvInt("RETRY_COUNT", 3, 1))
	// RetryDelay is the initial delay for exponential backoff.
	RetryDelay = config.EnvDuration("RETRY_DELAY", 1*time.Second, 10*time.Millisecond)
)

// IsTransient reports whether an error looks like a transient transport
// failure worth retrying: timeouts, connection resets and server-side
// (5xx / 429) hosting API responses.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		code := ghErr.Response.StatusCode
		return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
	}
	return false
}

// withTransientRetry runs fn with bounded exponential backoff, retrying
// only errors classified transient by IsTransient.
func withTransientRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(RetryCount, retry.NewExponential(RetryDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && IsTransient(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}
