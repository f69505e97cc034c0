package postgres

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
	"github.com/iho/gojournal/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(pool *pgxpool.Pool) *BalanceRepository {
	return &BalanceRepository{pool: pool}
}

// Apply folds entries into the balance rows of their accounts. Rows are
// upserted in account id order so concurrent postings lock them in the same
// order.
func (r *BalanceRepository) Apply(ctx context.Context, tx usecase.Transaction, entries []*domain.JournalEntry) error {
	byAccount := make(map[string]*domain.AccountBalance)
	for _, e := range entries {
		b, ok := byAccount[e.AccountID]
		if !ok {
			b = &domain.AccountBalance{AccountID: e.AccountID, Currency: e.Currency}
			byAccount[e.AccountID] = b
		}
		b.Apply(e)
	}

	ids := make([]string, 0, len(byAccount))
	for id := range byAccount {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	queries := queriesFor(r.pool, tx)
	for _, id := range ids {
		b := byAccount[id]
		err := queries.UpsertAccountBalance(ctx, generated.UpsertAccountBalanceParams{
			AccountID:    b.AccountID,
			Currency:     b.Currency,
			TotalDebits:  decimalToNumeric(b.TotalDebits),
			TotalCredits: decimalToNumeric(b.TotalCredits),
			LastSequence: b.LastSequence,
			UpdatedAt:    timeToPgTimestamptz(b.UpdatedAt),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Get returns the materialized balance of an account, or a zero balance
// when it has no postings yet.
func (r *BalanceRepository) Get(ctx context.Context, tx usecase.Transaction, accountID string) (*domain.AccountBalance, error) {
	row, err := queriesFor(r.pool, tx).GetAccountBalance(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.AccountBalance{
				AccountID:    accountID,
				TotalDebits:  decimal.Zero,
				TotalCredits: decimal.Zero,
			}, nil
		}
		return nil, err
	}

	return rowToBalance(row), nil
}

// List returns every materialized balance in account id order.
func (r *BalanceRepository) List(ctx context.Context, tx usecase.Transaction) ([]*domain.AccountBalance, error) {
	rows, err := queriesFor(r.pool, tx).ListAccountBalances(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]*domain.AccountBalance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, rowToBalance(row))
	}

	return balances, nil
}

func rowToBalance(row generated.AccountBalance) *domain.AccountBalance {
	return &domain.AccountBalance{
		AccountID:    row.AccountID,
		Currency:     row.Currency,
		TotalDebits:  numericToDecimal(row.TotalDebits),
		TotalCredits: numericToDecimal(row.TotalCredits),
		LastSequence: row.LastSequence,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
