package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = RetryPolicy{
	MaxRetries:      2,
	InitialInterval: time.Millisecond,
	MaxInterval:     2 * time.Millisecond,
	MaxElapsedTime:  time.Second,
}

func TestRetrier_RetriesConflicts(t *testing.T) {
	var logs bytes.Buffer
	r := NewRetrier(fastPolicy, zerolog.New(&logs))

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("apply balances: %w", &pgconn.PgError{Code: pgErrDeadlock})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Contains(t, logs.String(), `"sqlstate":"40P01"`)
	assert.Contains(t, logs.String(), `"retry":1`)
}

func TestRetrier_StopsOnOtherErrors(t *testing.T) {
	r := NewRetrier(fastPolicy, zerolog.Nop())
	unique := &pgconn.PgError{Code: "23505"}

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return unique
	})

	require.ErrorIs(t, err, unique)
	assert.Equal(t, 1, attempts)
}

func TestRetrier_GivesUpAfterMaxRetries(t *testing.T) {
	r := NewRetrier(fastPolicy, zerolog.Nop())

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	assert.Equal(t, pgErrSerializationFailure, sqlState(err))
	assert.Equal(t, 3, attempts)
}

func TestRetrier_StopsOnCancel(t *testing.T) {
	r := NewRetrier(RetryPolicy{MaxRetries: 100, InitialInterval: time.Millisecond}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := r.Retry(ctx, func() error {
		attempts++
		cancel()
		return &pgconn.PgError{Code: pgErrDeadlock}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestNewRetrier_Defaults(t *testing.T) {
	r := NewRetrier(RetryPolicy{MaxRetries: 7}, zerolog.Nop())
	assert.Equal(t, 7, r.policy.MaxRetries)
	assert.Equal(t, DefaultRetryPolicy.InitialInterval, r.policy.InitialInterval)
	assert.Equal(t, DefaultRetryPolicy.MaxElapsedTime, r.policy.MaxElapsedTime)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&pgconn.PgError{Code: pgErrDeadlock}))
	assert.True(t, isRetryableError(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgErrSerializationFailure})))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryableError(errors.New("other")))
	assert.Empty(t, sqlState(errors.New("other")))
}
