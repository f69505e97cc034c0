package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// TotalsByCurrency sums all debits and credits per currency.
func (r *LedgerRepository) TotalsByCurrency(_ context.Context, tx usecase.Transaction) ([]domain.CurrencyTotals, error) {
	byCurrency := make(map[string]*domain.CurrencyTotals)
	err := r.store.read(tx, func(v view) error {
		for _, e := range v.entries {
			t, ok := byCurrency[e.Currency]
			if !ok {
				t = &domain.CurrencyTotals{Currency: e.Currency, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
				byCurrency[e.Currency] = t
			}
			t.TotalDebits = t.TotalDebits.Add(e.Debit)
			t.TotalCredits = t.TotalCredits.Add(e.Credit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.CurrencyTotals, 0, len(byCurrency))
	for _, t := range byCurrency {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Currency < result[j].Currency })
	return result, nil
}
