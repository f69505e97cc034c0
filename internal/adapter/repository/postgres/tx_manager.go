package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
	"github.com/iho/gojournal/internal/usecase"
)

// txStarter is the part of *pgxpool.Pool the manager needs; pgxmock
// satisfies it in tests.
type txStarter interface {
	BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error)
}

var (
	// Writes run read-committed and rely on row locks taken by the posting path.
	writeOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	// Reports and listings read one consistent snapshot.
	snapshotOptions = pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}
)

// TxManager implements usecase.TransactionManager on a pgx pool.
type TxManager struct {
	db txStarter
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManager(pool)
}

func newTxManager(db txStarter) *TxManager {
	return &TxManager{db: db}
}

// Begin starts a read-write transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	return m.begin(ctx, writeOptions)
}

// BeginSnapshot starts a read-only repeatable-read transaction.
func (m *TxManager) BeginSnapshot(ctx context.Context) (usecase.Transaction, error) {
	return m.begin(ctx, snapshotOptions)
}

func (m *TxManager) begin(ctx context.Context, opts pgx.TxOptions) (*Tx, error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("begin %s transaction: %w", opts.IsoLevel, err)
	}
	return &Tx{tx: tx}, nil
}

// Tx adapts pgx.Tx to usecase.Transaction.
type Tx struct {
	tx        pgx.Tx
	committed bool
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return err
	}
	t.committed = true
	return nil
}

// Rollback is a no-op once the transaction has been committed, so callers
// can defer it unconditionally.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.committed {
		return nil
	}
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// queriesFor binds the generated queries to tx, or to db when tx is nil.
// tx must come from a TxManager.
func queriesFor(db generated.DBTX, tx usecase.Transaction) *generated.Queries {
	if tx == nil {
		return generated.New(db)
	}
	return generated.New(tx.(*Tx).tx)
}
