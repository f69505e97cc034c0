package usecase

import (
	"context"
	"time"

	"github.com/iho/gojournal/internal/domain"
)

// EntryUseCase serves read-only, paginated access to the journal.
type EntryUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(txManager TransactionManager, entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
	}
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	StartDate     *time.Time
	EndDate       *time.Time
	AccountID     string
	AccountType   string
	AccountName   string
	Currency      string
	TransactionID string
	Page          int
	PerPage       int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page    int
	PerPage int
	Total   int
	Pages   int
	HasNext bool
	HasPrev bool
}

// ListEntriesResult is one page of journal entries.
type ListEntriesResult struct {
	Entries    []*domain.EntryView
	Pagination Pagination
	Filters    domain.EntryFilter
}

// ListEntries returns entries matching the filters in sequence order. The
// total and the page are read from the same snapshot.
func (uc *EntryUseCase) ListEntries(ctx context.Context, input ListEntriesInput) (*ListEntriesResult, error) {
	filter, err := entryFilter(input)
	if err != nil {
		return nil, err
	}

	page, perPage := domain.ValidatePagination(input.Page, input.PerPage)

	var (
		entries []*domain.EntryView
		total   int
	)
	err = readSnapshot(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		total, err = uc.entryRepo.Count(ctx, tx, filter)
		if err != nil {
			return err
		}
		entries, err = uc.entryRepo.List(ctx, tx, filter, perPage, (page-1)*perPage)
		return err
	})
	if err != nil {
		return nil, err
	}

	pages := (total + perPage - 1) / perPage

	return &ListEntriesResult{
		Entries: entries,
		Pagination: Pagination{
			Page:    page,
			PerPage: perPage,
			Total:   total,
			Pages:   pages,
			HasNext: page < pages,
			HasPrev: page > 1,
		},
		Filters: filter,
	}, nil
}

func entryFilter(input ListEntriesInput) (domain.EntryFilter, error) {
	filter := domain.EntryFilter{
		AccountID:     input.AccountID,
		AccountName:   input.AccountName,
		TransactionID: input.TransactionID,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
	}

	if input.AccountType != "" {
		t, err := domain.ParseAccountType(input.AccountType)
		if err != nil {
			return filter, err
		}
		filter.AccountType = t
	}

	if input.Currency != "" {
		if err := domain.ValidateCurrency(input.Currency); err != nil {
			return filter, err
		}
		filter.Currency = domain.NormalizeCurrency(input.Currency)
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, domain.ErrInvalidDateRange
	}

	return filter, nil
}
