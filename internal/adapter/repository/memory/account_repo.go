package memory

import (
	"context"
	"sort"
	"time"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create buffers a new account in tx.
func (r *AccountRepository) Create(_ context.Context, tx usecase.Transaction, account *domain.Account) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}

	r.store.mu.RLock()
	_, exists := r.store.accountKeys[accountKey(account.Name, account.Currency)]
	r.store.mu.RUnlock()
	if exists {
		return domain.ErrDuplicateAccount
	}

	for _, a := range t.accounts {
		if a.Name == account.Name && a.Currency == account.Currency {
			return domain.ErrDuplicateAccount
		}
	}

	t.accounts = append(t.accounts, account)
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

// GetByIDs returns the known accounts among ids, ordered by id.
func (r *AccountRepository) GetByIDs(_ context.Context, ids []string) ([]*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.store.accounts[id]; ok {
			cp := *a
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// List returns the accounts matching filter in name order.
func (r *AccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	return r.ListTx(ctx, nil, filter)
}

// ListTx is List inside tx.
func (r *AccountRepository) ListTx(_ context.Context, tx usecase.Transaction, filter domain.AccountFilter) ([]*domain.Account, error) {
	var result []*domain.Account
	err := r.store.read(tx, func(v view) error {
		for _, a := range v.accounts {
			if filter.Matches(a) {
				cp := *a
				result = append(result, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		if result[i].Currency != result[j].Currency {
			return result[i].Currency < result[j].Currency
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// UpdateStatus sets the status flag of an account.
func (r *AccountRepository) UpdateStatus(_ context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	return r.update(id, func(a *domain.Account) {
		a.Status = status
		a.UpdatedAt = updatedAt
	})
}

// UpdateCashFlowCategory sets the cash-flow tag of an account.
func (r *AccountRepository) UpdateCashFlowCategory(_ context.Context, id string, category domain.CashFlowCategory, updatedAt time.Time) error {
	return r.update(id, func(a *domain.Account) {
		a.CashFlowCategory = category
		a.UpdatedAt = updatedAt
	})
}

func (r *AccountRepository) update(id string, fn func(a *domain.Account)) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	cp := *a
	fn(&cp)
	r.store.accounts[id] = &cp
	return nil
}
