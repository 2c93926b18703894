package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"container-os/internal/types"
)

func TestRetryPolicyBacksOffLinearlyOnRateLimit(t *testing.T) {
	sleeper := &recordingSleep{}
	policy := NewRetryPolicy(3, 30*time.Second)
	policy.Sleep = sleeper.Sleep

	attempts, err := policy.Do(context.Background(), func(attempt int) error {
		if attempt < 3 {
			return fmt.Errorf("push: %w", types.ErrRateLimited)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{30 * time.Second, 60 * time.Second}, sleeper.waits)
}

func TestRetryPolicyStopsOnOtherErrors(t *testing.T) {
	sleeper := &recordingSleep{}
	policy := NewRetryPolicy(3, time.Second)
	policy.Sleep = sleeper.Sleep

	attempts, err := policy.Do(context.Background(), func(int) error { return errRegistryDown })
	require.ErrorIs(t, err, errRegistryDown)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, sleeper.waits)
}

func TestRetryPolicyGivesUpAfterMaxAttempts(t *testing.T) {
	sleeper := &recordingSleep{}
	policy := NewRetryPolicy(2, time.Second)
	policy.Sleep = sleeper.Sleep

	attempts, err := policy.Do(context.Background(), func(int) error { return types.ErrRateLimited })
	require.True(t, errors.Is(err, types.ErrRateLimited))
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []time.Duration{time.Second}, sleeper.waits)
}

func TestNewRetryPolicyDefaults(t *testing.T) {
	policy := NewRetryPolicy(0, -time.Second)
	assert.Equal(t, DefaultMaxAttempts, policy.MaxAttempts)
	assert.Zero(t, policy.BaseDelay)
}

func TestSleepHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}
