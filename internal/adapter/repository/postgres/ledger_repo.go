package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// TotalsByCurrency sums all debits and credits of the journal per currency.
func (r *LedgerRepository) TotalsByCurrency(ctx context.Context, tx usecase.Transaction) ([]domain.CurrencyTotals, error) {
	rows, err := queriesFor(r.pool, tx).GetTotalsByCurrency(ctx)
	if err != nil {
		return nil, err
	}

	totals := make([]domain.CurrencyTotals, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, domain.CurrencyTotals{
			Currency:     row.Currency,
			TotalDebits:  numericToDecimal(row.TotalDebits),
			TotalCredits: numericToDecimal(row.TotalCredits),
		})
	}

	return totals, nil
}
