package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoll_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Poll(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestPoll_SucceedsAfterFailures(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Poll(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("not ready")
		}
		return nil
	}, WithInitialDelay(time.Millisecond), WithMaxDelay(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPoll_ExhaustsBudget(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Poll(context.Background(), func() error {
		calls++
		return errors.New("still not ready")
	}, WithMaxAttempts(3), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "gave up after 3 attempts")
}

func TestPoll_FatalStopsImmediately(t *testing.T) {
	t.Parallel()
	calls := 0
	err := Poll(context.Background(), func() error {
		calls++
		return Fatal(errors.New("bad state"))
	}, WithMaxAttempts(5), WithInitialDelay(time.Millisecond))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "not retrying")
}

func TestPoll_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Poll(ctx, func() error {
		return errors.New("not ready")
	}, WithInitialDelay(time.Minute))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsFatal(t *testing.T) {
	t.Parallel()
	assert.True(t, IsFatal(Fatal(errors.New("x"))))
	assert.False(t, IsFatal(errors.New("x")))
	assert.NoError(t, Fatal(nil))
}
