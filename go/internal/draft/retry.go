package draft

import (
	"context"
	"time"
)

const (
	maxStorageRetries = 3
	retryBaseDelay    = 100 * time.Millisecond
)

// withRetry runs fn up to maxStorageRetries times with exponential backoff.
// Engine-taxonomy errors (validation, state, turn, availability, limit,
// not-found, conflict) are terminal and returned immediately; only transient
// infrastructure failures are retried. fn re-reads fresh state on each
// attempt, so a retry never replays a stale mutation.
func withRetry(ctx context.Context, fn func() error) error {
	var lastErr error

	delay := retryBaseDelay
	for attempt := 1; attempt <= maxStorageRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		err := fn()
		if err == nil {
			return nil
		}
		if isTerminal(err) {
			return err
		}
		lastErr = err
	}

	return lastErr
}
