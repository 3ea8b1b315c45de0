package youtube

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBackoffPeriod is applied after a rate limited response that
// carries no Retry-After header.
const DefaultBackoffPeriod = 60 * time.Second

// RateLimiter spaces API calls with a token bucket and pauses all calls
// after the API reports a rate limit.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// NewRateLimiter allows requestsPerSecond sustained calls with a burst of
// the same size, rounded up.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	burst := max(int(math.Ceil(requestsPerSecond)), 1)
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		now:     time.Now,
	}
}

// Wait blocks until a call may be made or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	now := r.now()
	r.mu.Unlock()

	if now.Before(retryAt) {
		timer := time.NewTimer(retryAt.Sub(now))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimit pauses calls for retryAfter, or DefaultBackoffPeriod
// when retryAfter is not positive.
func (r *RateLimiter) RecordRateLimit(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfter <= 0 {
		retryAfter = DefaultBackoffPeriod
	}
	r.retryAt = r.now().Add(retryAfter)
}

// Allow reports whether a call may be made immediately, consuming a token if so.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	paused := r.now().Before(r.retryAt)
	r.mu.Unlock()

	if paused {
		return false
	}
	return r.limiter.Allow()
}
