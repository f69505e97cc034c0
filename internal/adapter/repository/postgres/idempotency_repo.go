package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
	"github.com/iho/gojournal/internal/usecase"
)

// IdempotencyRepository implements usecase.IdempotencyRepository.
type IdempotencyRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewIdempotencyRepository creates a new IdempotencyRepository.
func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts record inside tx. A concurrent insert of the same key
// blocks until the other transaction finishes; if it committed, the insert
// affects no row and ErrDuplicateIdempotencyKey is returned.
func (r *IdempotencyRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.IdempotencyRecord) error {
	n, err := queriesFor(r.pool, tx).CreateIdempotencyKey(ctx, generated.CreateIdempotencyKeyParams{
		Key:           record.Key,
		RequestHash:   record.RequestHash,
		TransactionID: record.TransactionID,
		CreatedAt:     timeToPgTimestamptz(record.CreatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDuplicateIdempotencyKey
	}

	return nil
}

// Get returns the record for key, or nil.
func (r *IdempotencyRepository) Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &domain.IdempotencyRecord{
		Key:           row.Key,
		RequestHash:   row.RequestHash,
		TransactionID: row.TransactionID,
		CreatedAt:     row.CreatedAt.Time,
	}, nil
}
