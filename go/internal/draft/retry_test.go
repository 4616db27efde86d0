package draft

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetryTerminalErrorReturnsImmediately(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		return NewConflictError("lost the slot")
	})

	assert.True(t, IsConflict(err))
	assert.Equal(t, 1, calls, "terminal errors must not be retried")
}

func TestWithRetryTransientErrorRetries(t *testing.T) {
	calls := 0
	err := withRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	sentinel := errors.New("still down")
	err := withRetry(context.Background(), func() error {
		calls++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, maxStorageRetries, calls)
}

func TestWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := withRetry(ctx, func() error {
		calls++
		return errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "a canceled context stops the backoff before the next attempt")
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := wrapNotFound("draft", sql.ErrNoRows)
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, Kind(""), KindOf(errors.New("infra")))
	assert.True(t, isTerminal(NewLimitError("full")))
	assert.False(t, isTerminal(errors.New("infra")))
}
