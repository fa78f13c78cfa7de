package connectors

import (
	"context"
	"errors"
	"time"
)

// Retry policy defaults. Backoff doubles per attempt between the floor
// and the ceiling.
const (
	MaxRetries        = 3
	BackoffFloor      = 500 * time.Millisecond
	BackoffCeiling    = 30 * time.Second
	BackoffMultiplier = 2
)

// RetryPolicy bounds the retry loop for one source.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// Floor and Ceiling bound the backoff wait.
	Floor   time.Duration
	Ceiling time.Duration
}

// DefaultRetryPolicy returns the standard policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: MaxRetries, Floor: BackoffFloor, Ceiling: BackoffCeiling}
}

// Do runs fn, retrying transient ServiceError failures with exponential
// backoff. Permanent failures (authentication, not-found, 4xx) surface
// immediately. A rate-limit hint from the source replaces the computed
// backoff when it is longer. Waits are cancellable through ctx.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	backoff := p.Floor

	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		var se *ServiceError
		if !errors.As(err, &se) || !se.Temporary() {
			return err
		}
		if attempt == p.MaxRetries {
			return err
		}

		wait := backoff
		if se.Kind == KindRateLimited && se.RetryAfter > wait {
			wait = se.RetryAfter
		}
		if wait > p.Ceiling {
			wait = p.Ceiling
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		backoff *= BackoffMultiplier
		if backoff > p.Ceiling {
			backoff = p.Ceiling
		}
	}
}
