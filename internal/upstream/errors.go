// Package upstream talks to the NBA data endpoints: a rate limiter, a
// retrying fetcher and an HTTP client for the four dataset operations.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUpstreamUnavailable is returned once retries are exhausted. It wraps the
// last underlying error.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// TransientError marks a failure worth retrying: network errors, timeouts,
// HTTP 429 and 5xx responses.
type TransientError struct {
	Err         error
	RateLimited bool
}

func (e *TransientError) Error() string {
	if e.RateLimited {
		return fmt.Sprintf("rate limited by upstream: %v", e.Err)
	}
	return fmt.Sprintf("transient upstream error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// NonTransientError marks a failure that retrying cannot fix: rejected
// requests and malformed responses.
type NonTransientError struct {
	Err error
}

func (e *NonTransientError) Error() string {
	return fmt.Sprintf("upstream rejected request: %v", e.Err)
}

func (e *NonTransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err should be retried.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsRateLimited reports whether err was a 429-equivalent response.
func IsRateLimited(err error) bool {
	var te *TransientError
	return errors.As(err, &te) && te.RateLimited
}

// errorFromStatus maps a non-2xx HTTP status to the error taxonomy.
func errorFromStatus(status int) error {
	err := fmt.Errorf("unexpected status %d", status)
	switch {
	case status == http.StatusTooManyRequests:
		return &TransientError{Err: err, RateLimited: true}
	case status >= 500:
		return &TransientError{Err: err}
	default:
		return &NonTransientError{Err: err}
	}
}
