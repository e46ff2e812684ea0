package upstream

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval is the minimum spacing between upstream requests.
const DefaultMinInterval = 600 * time.Millisecond

// Limiter enforces a minimum interval between granted acquisitions. It is a
// single shared instance on every fetch path; acquisitions are serialized by
// the mutex, which is held across the wait so that no two callers observe
// overlapping windows.
type Limiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	penalty     time.Duration
	last        time.Time

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewLimiter creates a limiter with the given minimum spacing.
func NewLimiter(minInterval time.Duration) *Limiter {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Limiter{
		minInterval: minInterval,
		now:         time.Now,
		sleep:       sleepContext,
	}
}

// Acquire blocks until the minimum interval (plus any pending penalty) has
// elapsed since the last granted acquisition, then stamps the new window.
// On cancellation the acquisition is abandoned without updating the stamp.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		wait := l.minInterval + l.penalty - l.now().Sub(l.last)
		if wait > 0 {
			if err := l.sleep(ctx, wait); err != nil {
				return err
			}
		}
	}

	l.penalty = 0
	l.last = l.now()
	return nil
}

// Penalize widens the next acquisition window by d. Used as back-pressure
// after a 429-equivalent response; only the largest pending penalty is kept.
func (l *Limiter) Penalize(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d > l.penalty {
		l.penalty = d
	}
}

// sleepContext waits for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
