package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianrcm/denialflow/internal/service"
)

func fastOpts(maxAttempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  maxAttempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetrySucceedsFirstTry(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return nil
	}, fastOpts(3))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryEventualSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient"), Retryable: true}
		}
		return nil
	}, fastOpts(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: errors.New("transient"), Retryable: true}
	}, fastOpts(3))

	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, calls)
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	permanent := errors.New("permanent")
	err := WithRetry(context.Background(), func() error {
		calls++
		return &RetryableError{Err: permanent, Retryable: false}
	}, fastOpts(5))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 1, calls)
}

func TestWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return &RetryableError{Err: errors.New("transient"), Retryable: true}
	}, fastOpts(5))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(ErrPayerRateLimit))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(ErrInvalidConfig))
}

func TestUserError(t *testing.T) {
	wrapped := errors.New("db locked")
	err := NewUserError("could not save denial record", wrapped)

	assert.Equal(t, "could not save denial record: db locked", err.Error())
	assert.ErrorIs(t, err, wrapped)

	bare := NewUserError("nothing to process", nil)
	assert.Equal(t, "nothing to process", bare.Error())
}
