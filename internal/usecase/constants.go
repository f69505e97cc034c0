package usecase

import (
	"context"
	"time"
)

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// ReversalKeyPrefix derives the idempotency key of a reversal from the
	// reversed transaction id.
	ReversalKeyPrefix = "reversal:"

	// MaxIdempotencyKeyLength bounds caller-supplied keys.
	MaxIdempotencyKeyLength = 255
)

type noopMetrics struct{}

func (noopMetrics) TransactionPosted(string, int) {}
func (noopMetrics) PostingFailed(string) {}
func (noopMetrics) AccountRegistered(string) {}
func (noopMetrics) ReportGenerated(string, time.Duration) {}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}

func utcNow() time.Time {
	return time.Now().UTC()
}
