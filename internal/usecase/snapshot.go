package usecase

import (
	"context"
	"fmt"

	"github.com/iho/gojournal/internal/domain"
)

// readSnapshot runs fn inside a read-only snapshot so every read it makes
// observes the same committed state. Errors from fn are storage failures.
func readSnapshot(ctx context.Context, txManager TransactionManager, fn func(tx Transaction) error) error {
	tx, err := txManager.BeginSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin snapshot: %w", domain.ErrStorageFailure, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: end snapshot: %w", domain.ErrStorageFailure, err)
	}

	return nil
}
