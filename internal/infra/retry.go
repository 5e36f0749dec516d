package infra

import (
	"context"
	"fmt"
	"time"

	"rlpmon/internal/domain"
)

// BackoffStrategy maps a zero-based attempt number to the delay before the
// next attempt.
type BackoffStrategy func(attempt int) time.Duration

// FixedBackoff waits the same delay between every attempt.
func FixedBackoff(d time.Duration) BackoffStrategy {
	return func(int) time.Duration { return d }
}

// ExpBackoff doubles the delay per attempt, capped at max.
func ExpBackoff(base, max time.Duration) BackoffStrategy {
	return func(attempt int) time.Duration {
		d := base << uint(attempt)
		if d <= 0 || d > max {
			return max
		}
		return d
	}
}

// Retry runs fn up to attempts times, waiting per the backoff strategy
// between failures. Only retriable errors (domain.IsRetriable) are retried;
// anything else propagates immediately. After the attempt budget the last
// error is returned wrapped in ErrRetriesExhausted. Never runs fn more than
// attempts times.
func Retry(ctx context.Context, attempts int, backoff BackoffStrategy, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if !domain.IsRetriable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(i)):
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", domain.ErrRetriesExhausted, attempts, err)
}
