package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

func TestEntryUseCase_ListEntries_Pagination(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	cash := l.register(t, "asset", "Cash", "USD")
	equity := l.register(t, "equity", "Owner Equity", "USD")
	for i := 1; i <= 5; i++ {
		l.transfer(t, cash, equity, fmt.Sprintf("%d.00", i))
	}

	page, err := l.entries.ListEntries(ctx, usecase.ListEntriesInput{Page: 2, PerPage: 4})
	require.NoError(t, err)
	require.Len(t, page.Entries, 4)
	assert.Equal(t, int64(5), page.Entries[0].SequenceNumber)
	assert.Equal(t, usecase.Pagination{Page: 2, PerPage: 4, Total: 10, Pages: 3, HasNext: true, HasPrev: true}, page.Pagination)

	last, err := l.entries.ListEntries(ctx, usecase.ListEntriesInput{Page: 3, PerPage: 4})
	require.NoError(t, err)
	assert.Len(t, last.Entries, 2)
	assert.False(t, last.Pagination.HasNext)

	defaults, err := l.entries.ListEntries(ctx, usecase.ListEntriesInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, defaults.Pagination.Page)
	assert.Equal(t, domain.DefaultPageSize, defaults.Pagination.PerPage)
}

func TestEntryUseCase_ListEntries_Filters(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	cash := l.register(t, "asset", "Cash", "USD")
	sales := l.register(t, "revenue", "Sales", "USD")
	start := l.clock.Now()
	txID := l.transfer(t, cash, sales, "10")
	l.clock.Set(start.Add(48 * time.Hour))
	l.transfer(t, cash, sales, "20")

	byTx, err := l.entries.ListEntries(ctx, usecase.ListEntriesInput{TransactionID: txID})
	require.NoError(t, err)
	require.Len(t, byTx.Entries, 2)
	assert.Equal(t, cash.ID, byTx.Entries[0].AccountID)
	assert.Equal(t, sales.ID, byTx.Entries[1].AccountID)

	byType, err := l.entries.ListEntries(ctx, usecase.ListEntriesInput{AccountType: "revenue"})
	require.NoError(t, err)
	assert.Equal(t, 2, byType.Pagination.Total)
	assert.Equal(t, domain.AccountTypeRevenue, byType.Filters.AccountType)
	assert.Equal(t, "Sales", byType.Entries[0].AccountName)

	end := start.Add(time.Hour)
	byDate, err := l.entries.ListEntries(ctx, usecase.ListEntriesInput{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.Equal(t, 2, byDate.Pagination.Total)

	_, err = l.entries.ListEntries(ctx, usecase.ListEntriesInput{StartDate: &end, EndDate: &start})
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)

	_, err = l.entries.ListEntries(ctx, usecase.ListEntriesInput{Currency: "ZZZ"})
	require.ErrorIs(t, err, domain.ErrInvalidCurrency)
}
