package upstream

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Fetcher retry defaults.
const (
	DefaultMaxAttempts = 3
	DefaultBackoffBase = 1 * time.Second

	// rateLimitCooldown widens the limiter's next window after a 429, on top
	// of the fetch-level backoff.
	rateLimitCooldown = 5 * time.Second
)

// Operation performs a single upstream call and returns the normalized
// payload for the requested dataset.
type Operation func(ctx context.Context) ([]byte, error)

// Fetcher wraps an Operation with bounded exponential-backoff retry. Every
// attempt goes through the shared Limiter first. Transient failures are
// retried with backoff plus jitter; non-transient failures surface
// immediately; exhaustion yields ErrUpstreamUnavailable wrapping the last
// underlying error.
type Fetcher struct {
	limiter     *Limiter
	maxAttempts int
	backoffBase time.Duration

	sleep  func(context.Context, time.Duration) error
	jitter func(time.Duration) time.Duration
}

// NewFetcher creates a fetcher with default retry settings.
func NewFetcher(limiter *Limiter) *Fetcher {
	return &Fetcher{
		limiter:     limiter,
		maxAttempts: DefaultMaxAttempts,
		backoffBase: DefaultBackoffBase,
		sleep:       sleepContext,
		jitter:      defaultJitter,
	}
}

// defaultJitter returns a random delay up to a quarter of the base backoff.
func defaultJitter(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(base)/4 + 1))
}

// Do runs op with retry. The returned payload is only ever from a successful
// attempt; a cancelled context aborts between attempts without a result.
func (f *Fetcher) Do(ctx context.Context, op Operation) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if err := f.limiter.Acquire(ctx); err != nil {
			return nil, err
		}

		payload, err := op(ctx)
		if err == nil {
			return payload, nil
		}

		var te *TransientError
		if !errors.As(err, &te) {
			// Malformed response or rejected request: retrying cannot help.
			return nil, err
		}
		lastErr = err

		if te.RateLimited {
			f.limiter.Penalize(rateLimitCooldown)
		}

		if attempt < f.maxAttempts {
			delay := f.backoffBase<<(attempt-1) + f.jitter(f.backoffBase)
			if err := f.sleep(ctx, delay); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrUpstreamUnavailable, f.maxAttempts, lastErr)
}
