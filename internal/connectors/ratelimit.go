package connectors

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerMinute is the per-source budget used when the
// configuration does not set one.
const DefaultRequestsPerMinute = 30

// RateLimiter enforces a minimum inter-request spacing per external
// source, derived from a requests-per-minute budget. Callers queue on
// Wait rather than being rejected: concurrency above the budget is
// absorbed as backpressure. A burst of one keeps at most one request in
// flight per source at a time.
//
// On top of the token bucket, a backoff window set from a source's
// Retry-After hint delays all callers until the window passes.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter for the given requests-per-minute
// budget. Budgets below 1 fall back to DefaultRequestsPerMinute.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = DefaultRequestsPerMinute
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
	}
}

// Wait blocks until a request may be made, honouring both the token
// bucket and any backoff window. It returns early when ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRetryAfter opens a backoff window after a rate-limit response.
// A non-positive hint falls back to one minute.
func (r *RateLimiter) RecordRetryAfter(hint time.Duration) {
	if hint <= 0 {
		hint = time.Minute
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if until := time.Now().Add(hint); until.After(r.retryAt) {
		r.retryAt = until
	}
}
