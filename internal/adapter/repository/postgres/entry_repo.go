package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
	"github.com/iho/gojournal/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateBatch inserts the entries of one transaction in slice order and
// stores the assigned sequence numbers back on them.
func (r *EntryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.JournalEntry) error {
	queries := queriesFor(r.pool, tx)

	for _, e := range entries {
		var reverses pgtype.Text
		if e.ReversesTransactionID != nil {
			reverses = pgtype.Text{String: *e.ReversesTransactionID, Valid: true}
		}

		seq, err := queries.CreateJournalEntry(ctx, generated.CreateJournalEntryParams{
			ID:                    e.ID,
			TransactionID:         e.TransactionID,
			LineNumber:            int32(e.LineNumber),
			AccountID:             e.AccountID,
			Currency:              e.Currency,
			Debit:                 decimalToNumeric(e.Debit),
			Credit:                decimalToNumeric(e.Credit),
			Description:           e.Description,
			ReversesTransactionID: reverses,
			CreatedAt:             timeToPgTimestamptz(e.CreatedAt),
		})
		if err != nil {
			return err
		}
		e.SequenceNumber = seq
	}

	return nil
}

// GetByTransaction retrieves the lines of a transaction in line order.
func (r *EntryRepository) GetByTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error) {
	rows, err := r.queries.GetEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.JournalEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

// SumByAccount totals one account's entries created at or before asOf.
func (r *EntryRepository) SumByAccount(ctx context.Context, tx usecase.Transaction, accountID string, asOf *time.Time) (domain.AccountTotals, error) {
	row, err := queriesFor(r.pool, tx).SumEntriesByAccount(ctx, generated.SumEntriesByAccountParams{
		AccountID: accountID,
		AsOf:      timePtrToPgTimestamptz(asOf),
	})
	if err != nil {
		return domain.AccountTotals{}, err
	}

	return domain.AccountTotals{
		AccountID:    accountID,
		TotalDebits:  numericToDecimal(row.TotalDebits),
		TotalCredits: numericToDecimal(row.TotalCredits),
		LastSequence: row.LastSequence,
	}, nil
}

// SumByAccounts totals entries per account inside the optional bounds.
func (r *EntryRepository) SumByAccounts(ctx context.Context, tx usecase.Transaction, currency string, from, to *time.Time) ([]domain.AccountTotals, error) {
	rows, err := queriesFor(r.pool, tx).SumEntriesByAccounts(ctx, generated.SumEntriesByAccountsParams{
		Currency:  textOrNull(currency),
		StartDate: timePtrToPgTimestamptz(from),
		EndDate:   timePtrToPgTimestamptz(to),
	})
	if err != nil {
		return nil, err
	}

	totals := make([]domain.AccountTotals, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, domain.AccountTotals{
			AccountID:    row.AccountID,
			TotalDebits:  numericToDecimal(row.TotalDebits),
			TotalCredits: numericToDecimal(row.TotalCredits),
			LastSequence: row.LastSequence,
		})
	}

	return totals, nil
}

// List returns a page of entries matching filter in sequence order.
func (r *EntryRepository) List(ctx context.Context, tx usecase.Transaction, filter domain.EntryFilter, limit, offset int) ([]*domain.EntryView, error) {
	f := filterParams(filter)
	rows, err := queriesFor(r.pool, tx).ListEntries(ctx, generated.ListEntriesParams{
		AccountID:     f.AccountID,
		AccountType:   f.AccountType,
		AccountName:   f.AccountName,
		Currency:      f.Currency,
		TransactionID: f.TransactionID,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		Limit:         int32(limit),
		Offset:        int32(offset),
	})
	if err != nil {
		return nil, err
	}

	views := make([]*domain.EntryView, 0, len(rows))
	for _, row := range rows {
		views = append(views, rowToEntryView(generated.ListCashFlowEntriesRow(row)))
	}

	return views, nil
}

// Count returns the number of entries matching filter.
func (r *EntryRepository) Count(ctx context.Context, tx usecase.Transaction, filter domain.EntryFilter) (int, error) {
	n, err := queriesFor(r.pool, tx).CountEntries(ctx, filterParams(filter))
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// ListCashFlow returns period entries on accounts with a cash-flow category.
func (r *EntryRepository) ListCashFlow(ctx context.Context, tx usecase.Transaction, currency string, period domain.Period) ([]*domain.EntryView, error) {
	rows, err := queriesFor(r.pool, tx).ListCashFlowEntries(ctx, generated.ListCashFlowEntriesParams{
		Currency:  currency,
		StartDate: timeToPgTimestamptz(period.Start),
		EndDate:   timeToPgTimestamptz(period.End),
	})
	if err != nil {
		return nil, err
	}

	views := make([]*domain.EntryView, 0, len(rows))
	for _, row := range rows {
		views = append(views, rowToEntryView(row))
	}

	return views, nil
}

func filterParams(f domain.EntryFilter) generated.CountEntriesParams {
	return generated.CountEntriesParams{
		AccountID:     textOrNull(f.AccountID),
		AccountType:   textOrNull(string(f.AccountType)),
		AccountName:   textOrNull(f.AccountName),
		Currency:      textOrNull(f.Currency),
		TransactionID: textOrNull(f.TransactionID),
		StartDate:     timePtrToPgTimestamptz(f.StartDate),
		EndDate:       timePtrToPgTimestamptz(f.EndDate),
	}
}

func rowToEntry(row generated.JournalEntry) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:                    row.ID,
		SequenceNumber:        row.SequenceNumber,
		TransactionID:         row.TransactionID,
		LineNumber:            int(row.LineNumber),
		AccountID:             row.AccountID,
		Currency:              row.Currency,
		Debit:                 numericToDecimal(row.Debit),
		Credit:                numericToDecimal(row.Credit),
		Description:           row.Description,
		ReversesTransactionID: textPtr(row.ReversesTransactionID),
		CreatedAt:             row.CreatedAt.Time,
	}
}

func rowToEntryView(row generated.ListCashFlowEntriesRow) *domain.EntryView {
	return &domain.EntryView{
		JournalEntry: *rowToEntry(generated.JournalEntry{
			ID:                    row.ID,
			SequenceNumber:        row.SequenceNumber,
			TransactionID:         row.TransactionID,
			LineNumber:            row.LineNumber,
			AccountID:             row.AccountID,
			Currency:              row.Currency,
			Debit:                 row.Debit,
			Credit:                row.Credit,
			Description:           row.Description,
			ReversesTransactionID: row.ReversesTransactionID,
			CreatedAt:             row.CreatedAt,
		}),
		AccountType:      domain.AccountType(row.AccountType),
		AccountName:      row.AccountName,
		CashFlowCategory: domain.CashFlowCategory(row.CashFlowCategory),
	}
}
