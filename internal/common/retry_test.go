package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whatsthemove/moveplan/internal/service"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry(t *testing.T) {
	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return nil
		}, fastRetry(3))
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, fastRetry(3))
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return errors.New("always broken")
		}, fastRetry(2))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 2, calls)
	})

	t.Run("non-retryable errors return immediately", func(t *testing.T) {
		calls := 0
		wrapped := &RetryableError{Err: ErrCaptcha, Retryable: false}
		err := WithRetry(context.Background(), func() error {
			calls++
			return wrapped
		}, fastRetry(3))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCaptcha)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error {
			return errors.New("transient")
		}, fastRetry(3))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("lookup: %w", ErrNotFound)
	wrapped := &RetryableError{Err: inner, Retryable: true}

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, inner.Error(), wrapped.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.False(t, IsRetryable(errors.New("unclassified")))
}
