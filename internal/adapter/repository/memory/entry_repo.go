package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	store *Store
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(store *Store) *EntryRepository {
	return &EntryRepository{store: store}
}

// CreateBatch buffers the entries of one transaction in tx. Sequence numbers
// are assigned on commit.
func (r *EntryRepository) CreateBatch(_ context.Context, tx usecase.Transaction, entries []*domain.JournalEntry) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	t.entries = append(t.entries, entries...)
	return nil
}

// GetByTransaction returns the lines of a transaction in line order.
func (r *EntryRepository) GetByTransaction(_ context.Context, transactionID string) ([]*domain.JournalEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lines := r.store.byTransaction[transactionID]
	result := make([]*domain.JournalEntry, len(lines))
	for i, e := range lines {
		cp := *e
		result[i] = &cp
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LineNumber < result[j].LineNumber })
	return result, nil
}

// SumByAccount totals one account's entries created at or before asOf.
func (r *EntryRepository) SumByAccount(_ context.Context, tx usecase.Transaction, accountID string, asOf *time.Time) (domain.AccountTotals, error) {
	totals := domain.AccountTotals{AccountID: accountID, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
	err := r.store.read(tx, func(v view) error {
		for _, e := range v.entries {
			if e.AccountID != accountID || (asOf != nil && e.CreatedAt.After(*asOf)) {
				continue
			}
			addTotals(&totals, e)
		}
		return nil
	})
	return totals, err
}

// SumByAccounts totals entries per account inside the optional bounds, in
// account id order.
func (r *EntryRepository) SumByAccounts(_ context.Context, tx usecase.Transaction, currency string, from, to *time.Time) ([]domain.AccountTotals, error) {
	byAccount := make(map[string]*domain.AccountTotals)
	err := r.store.read(tx, func(v view) error {
		for _, e := range v.entries {
			if currency != "" && e.Currency != currency {
				continue
			}
			if from != nil && e.CreatedAt.Before(*from) {
				continue
			}
			if to != nil && e.CreatedAt.After(*to) {
				continue
			}
			t, ok := byAccount[e.AccountID]
			if !ok {
				t = &domain.AccountTotals{AccountID: e.AccountID, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
				byAccount[e.AccountID] = t
			}
			addTotals(t, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.AccountTotals, 0, len(byAccount))
	for _, t := range byAccount {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AccountID < result[j].AccountID })
	return result, nil
}

// List returns a page of entries matching filter in sequence order.
func (r *EntryRepository) List(_ context.Context, tx usecase.Transaction, filter domain.EntryFilter, limit, offset int) ([]*domain.EntryView, error) {
	var result []*domain.EntryView
	err := r.store.read(tx, func(v view) error {
		skipped := 0
		for _, e := range v.entries {
			a := v.accounts[e.AccountID]
			if !matches(filter, e, a) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(result) >= limit {
				break
			}
			result = append(result, entryView(e, a))
		}
		return nil
	})
	return result, err
}

// Count returns the number of entries matching filter.
func (r *EntryRepository) Count(_ context.Context, tx usecase.Transaction, filter domain.EntryFilter) (int, error) {
	n := 0
	err := r.store.read(tx, func(v view) error {
		for _, e := range v.entries {
			if matches(filter, e, v.accounts[e.AccountID]) {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ListCashFlow returns period entries on accounts with a cash-flow category.
func (r *EntryRepository) ListCashFlow(_ context.Context, tx usecase.Transaction, currency string, period domain.Period) ([]*domain.EntryView, error) {
	var result []*domain.EntryView
	err := r.store.read(tx, func(v view) error {
		for _, e := range v.entries {
			a := v.accounts[e.AccountID]
			if a == nil || a.CashFlowCategory == domain.CashFlowNone {
				continue
			}
			if e.Currency != currency || !period.Contains(e.CreatedAt) {
				continue
			}
			result = append(result, entryView(e, a))
		}
		return nil
	})
	return result, err
}

func addTotals(t *domain.AccountTotals, e *domain.JournalEntry) {
	t.TotalDebits = t.TotalDebits.Add(e.Debit)
	t.TotalCredits = t.TotalCredits.Add(e.Credit)
	if e.SequenceNumber > t.LastSequence {
		t.LastSequence = e.SequenceNumber
	}
}

func matches(f domain.EntryFilter, e *domain.JournalEntry, a *domain.Account) bool {
	if f.AccountID != "" && e.AccountID != f.AccountID {
		return false
	}
	if f.TransactionID != "" && e.TransactionID != f.TransactionID {
		return false
	}
	if f.Currency != "" && e.Currency != f.Currency {
		return false
	}
	if f.StartDate != nil && e.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && e.CreatedAt.After(*f.EndDate) {
		return false
	}
	if f.AccountType != "" && (a == nil || a.Type != f.AccountType) {
		return false
	}
	if f.AccountName != "" && (a == nil || a.Name != f.AccountName) {
		return false
	}
	return true
}

func entryView(e *domain.JournalEntry, a *domain.Account) *domain.EntryView {
	v := &domain.EntryView{JournalEntry: *e}
	if a != nil {
		v.AccountType = a.Type
		v.AccountName = a.Name
		v.CashFlowCategory = a.CashFlowCategory
	}
	return v
}
