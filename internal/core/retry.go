package core

import (
	"context"
	"errors"
	"time"

	"container-os/internal/types"
)

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 30 * time.Second
	DefaultThrottle    = 2 * time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy retries an operation that failed with a rate-limit signal.
// Backoff receives the 1-based number of the attempt that just failed.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Backoff     func(base time.Duration, attempt int) time.Duration
	Sleep       SleepFunc
	Retryable   func(err error) bool
}

func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay < 0 {
		baseDelay = 0
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		Backoff:     LinearBackoff,
		Sleep:       Sleep,
		Retryable:   IsRateLimited,
	}
}

// LinearBackoff waits base * attempt.
func LinearBackoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(attempt)
}

func IsRateLimited(err error) bool {
	return errors.Is(err, types.ErrRateLimited)
}

// Sleep is the wall-clock SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do runs op until it succeeds, fails with a non-retryable error, or the
// attempts are used up. It returns the number of attempts made and the
// last error.
func (p RetryPolicy) Do(ctx context.Context, op func(attempt int) error) (int, error) {
	attempts := max(p.MaxAttempts, 1)
	backoff := p.Backoff
	if backoff == nil {
		backoff = LinearBackoff
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRateLimited
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(attempt)
		if lastErr == nil {
			return attempt, nil
		}
		if !retryable(lastErr) || attempt == attempts {
			return attempt, lastErr
		}
		if err := sleep(ctx, backoff(p.BaseDelay, attempt)); err != nil {
			return attempt, err
		}
	}
	return attempts, lastErr
}
