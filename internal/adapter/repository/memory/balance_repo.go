package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// BalanceRepository implements usecase.BalanceRepository.
type BalanceRepository struct {
	store *Store
}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository(store *Store) *BalanceRepository {
	return &BalanceRepository{store: store}
}

// Apply buffers entries to be folded into balances on commit, after their
// sequence numbers are known.
func (r *BalanceRepository) Apply(_ context.Context, tx usecase.Transaction, entries []*domain.JournalEntry) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	t.applied = append(t.applied, entries...)
	return nil
}

// Get returns the materialized balance of an account.
func (r *BalanceRepository) Get(_ context.Context, tx usecase.Transaction, accountID string) (*domain.AccountBalance, error) {
	var result *domain.AccountBalance
	err := r.store.read(tx, func(v view) error {
		if b, ok := v.balances[accountID]; ok {
			cp := *b
			result = &cp
			return nil
		}
		result = &domain.AccountBalance{AccountID: accountID, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
		if a, ok := v.accounts[accountID]; ok {
			result.Currency = a.Currency
		}
		return nil
	})
	return result, err
}

// List returns every materialized balance in account id order.
func (r *BalanceRepository) List(_ context.Context, tx usecase.Transaction) ([]*domain.AccountBalance, error) {
	var result []*domain.AccountBalance
	err := r.store.read(tx, func(v view) error {
		for _, b := range v.balances {
			cp := *b
			result = append(result, &cp)
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool { return result[i].AccountID < result[j].AccountID })
	return result, err
}
