package memory

import (
	"context"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// IdempotencyRepository implements usecase.IdempotencyRepository.
type IdempotencyRepository struct {
	store *Store
}

// NewIdempotencyRepository creates a new IdempotencyRepository.
func NewIdempotencyRepository(store *Store) *IdempotencyRepository {
	return &IdempotencyRepository{store: store}
}

// Create buffers a record in tx. The key is checked again on commit.
func (r *IdempotencyRepository) Create(_ context.Context, tx usecase.Transaction, record *domain.IdempotencyRecord) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}

	r.store.mu.RLock()
	_, exists := r.store.idempotency[record.Key]
	r.store.mu.RUnlock()
	if exists {
		return domain.ErrDuplicateIdempotencyKey
	}

	t.idempotency = append(t.idempotency, record)
	return nil
}

// Get returns the record for key, or nil.
func (r *IdempotencyRepository) Get(_ context.Context, key string) (*domain.IdempotencyRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.idempotency[key]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}
