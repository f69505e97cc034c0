package postgres

import (
	"context"
	"time"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// NullOutboxRepository drops events. It is used when OUTBOX_ENABLED is false.
type NullOutboxRepository struct{}

// NewNullOutboxRepository creates a new NullOutboxRepository.
func NewNullOutboxRepository() *NullOutboxRepository {
	return &NullOutboxRepository{}
}

func (r *NullOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	return nil
}

func (r *NullOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	return nil, nil
}

func (r *NullOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	return nil
}

func (r *NullOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return nil
}

// Compile-time checks
var (
	_ usecase.TransactionManager    = (*TxManager)(nil)
	_ usecase.AccountRepository     = (*AccountRepository)(nil)
	_ usecase.EntryRepository       = (*EntryRepository)(nil)
	_ usecase.BalanceRepository     = (*BalanceRepository)(nil)
	_ usecase.LedgerRepository      = (*LedgerRepository)(nil)
	_ usecase.IdempotencyRepository = (*IdempotencyRepository)(nil)
	_ usecase.OutboxRepository      = (*OutboxRepository)(nil)
	_ usecase.OutboxRepository      = (*NullOutboxRepository)(nil)
	_ usecase.Retrier               = (*Retrier)(nil)
	_ usecase.IDGenerator           = (*ULIDGenerator)(nil)
)
