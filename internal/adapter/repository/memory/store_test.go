package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gojournal/internal/domain"
)

func newAccount(id, name string, typ domain.AccountType) *domain.Account {
	return &domain.Account{
		ID:       id,
		Name:     name,
		Currency: "USD",
		Type:     typ,
		Status:   domain.AccountStatusActive,
	}
}

func pair(txID string, at time.Time, debitAcc, creditAcc, amount string) []*domain.JournalEntry {
	amt := decimal.RequireFromString(amount)
	return []*domain.JournalEntry{
		{ID: txID + "-1", TransactionID: txID, AccountID: debitAcc, Currency: "USD", Debit: amt, LineNumber: 1, CreatedAt: at},
		{ID: txID + "-2", TransactionID: txID, AccountID: creditAcc, Currency: "USD", Credit: amt, LineNumber: 2, CreatedAt: at},
	}
}

func seed(t *testing.T, s *Store, accounts ...*domain.Account) {
	t.Helper()
	ctx := context.Background()
	repo := NewAccountRepository(s)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	for _, a := range accounts {
		require.NoError(t, repo.Create(ctx, tx, a))
	}
	require.NoError(t, tx.Commit(ctx))
}

func post(t *testing.T, s *Store, entries []*domain.JournalEntry) {
	t.Helper()
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, NewEntryRepository(s).CreateBatch(ctx, tx, entries))
	require.NoError(t, NewBalanceRepository(s).Apply(ctx, tx, entries))
	require.NoError(t, tx.Commit(ctx))
}

func TestStore_CommitAssignsSequences(t *testing.T) {
	s := NewStore()
	seed(t, s, newAccount("cash", "Cash", domain.AccountTypeAsset), newAccount("eq", "Equity", domain.AccountTypeEquity))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := pair("t1", now, "cash", "eq", "10.00")
	second := pair("t2", now, "cash", "eq", "5.00")
	post(t, s, first)
	post(t, s, second)

	assert.Equal(t, int64(1), first[0].SequenceNumber)
	assert.Equal(t, int64(2), first[1].SequenceNumber)
	assert.Equal(t, int64(4), second[1].SequenceNumber)

	bal, err := NewBalanceRepository(s).Get(context.Background(), nil, "cash")
	require.NoError(t, err)
	assert.True(t, bal.TotalDebits.Equal(decimal.RequireFromString("15")))
	assert.Equal(t, int64(3), bal.LastSequence)
}

func TestStore_CommitStampsMonotonicCreatedAt(t *testing.T) {
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := noon
	s := NewStore(WithClock(func() time.Time { return now }))
	seed(t, s, newAccount("cash", "Cash", domain.AccountTypeAsset), newAccount("eq", "Equity", domain.AccountTypeEquity))

	// Prepared before the first commit, with an earlier wall-clock stamp.
	slow := pair("slow", noon.Add(-time.Minute), "cash", "eq", "1")
	fast := pair("fast", noon, "cash", "eq", "2")

	post(t, s, fast)
	now = noon.Add(-time.Hour)
	post(t, s, slow)

	assert.Equal(t, noon, fast[0].CreatedAt)
	assert.Equal(t, noon, slow[0].CreatedAt, "a later commit must not be stamped before an earlier one")
	assert.Greater(t, slow[0].SequenceNumber, fast[1].SequenceNumber)

	// A read just before the first commit sees neither posting.
	before := noon.Add(-time.Nanosecond)
	totals, err := NewEntryRepository(s).SumByAccount(context.Background(), nil, "cash", &before)
	require.NoError(t, err)
	assert.True(t, totals.TotalDebits.IsZero())

	now = noon.Add(time.Hour)
	later := pair("later", noon, "cash", "eq", "3")
	post(t, s, later)
	assert.Equal(t, noon.Add(time.Hour), later[0].CreatedAt)
}

func TestStore_RollbackDiscardsWrites(t *testing.T) {
	s := NewStore()
	seed(t, s, newAccount("cash", "Cash", domain.AccountTypeAsset), newAccount("eq", "Equity", domain.AccountTypeEquity))
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, NewEntryRepository(s).CreateBatch(ctx, tx, pair("t1", time.Now(), "cash", "eq", "1")))
	require.NoError(t, tx.Rollback(ctx))
	assert.ErrorIs(t, tx.Commit(ctx), ErrTxDone)

	entries, err := NewEntryRepository(s).GetByTransaction(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore()
	seed(t, s, newAccount("cash", "Cash", domain.AccountTypeAsset), newAccount("eq", "Equity", domain.AccountTypeEquity))
	ctx := context.Background()
	entries := NewEntryRepository(s)

	post(t, s, pair("t1", time.Now(), "cash", "eq", "10"))

	snap, err := s.BeginSnapshot(ctx)
	require.NoError(t, err)
	defer snap.Rollback(ctx)

	post(t, s, pair("t2", time.Now(), "cash", "eq", "20"))

	inSnap, err := entries.Count(ctx, snap, domain.EntryFilter{})
	require.NoError(t, err)
	latest, err := entries.Count(ctx, nil, domain.EntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, inSnap)
	assert.Equal(t, 4, latest)

	bal, err := NewBalanceRepository(s).Get(ctx, snap, "cash")
	require.NoError(t, err)
	assert.True(t, bal.TotalDebits.Equal(decimal.NewFromInt(10)))

	assert.ErrorIs(t, entries.CreateBatch(ctx, snap, nil), ErrReadOnly)
}

func TestStore_DuplicateKeysRejectedOnCommit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := NewIdempotencyRepository(s)

	tx1, _ := s.Begin(ctx)
	tx2, _ := s.Begin(ctx)
	require.NoError(t, repo.Create(ctx, tx1, &domain.IdempotencyRecord{Key: "k", TransactionID: "a"}))
	require.NoError(t, repo.Create(ctx, tx2, &domain.IdempotencyRecord{Key: "k", TransactionID: "b"}))

	require.NoError(t, tx1.Commit(ctx))
	assert.ErrorIs(t, tx2.Commit(ctx), domain.ErrDuplicateIdempotencyKey)

	rec, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "a", rec.TransactionID)
}

func TestAccountRepository_Duplicate(t *testing.T) {
	s := NewStore()
	seed(t, s, newAccount("cash", "Cash", domain.AccountTypeAsset))
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	err := NewAccountRepository(s).Create(ctx, tx, newAccount("other", "Cash", domain.AccountTypeAsset))
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)
}

func TestEntryRepository_ListFilters(t *testing.T) {
	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	now := jan
	s := NewStore(WithClock(func() time.Time { return now }))
	seed(t, s,
		newAccount("cash", "Cash", domain.AccountTypeAsset),
		newAccount("eq", "Equity", domain.AccountTypeEquity),
		newAccount("rev", "Sales", domain.AccountTypeRevenue),
	)
	ctx := context.Background()
	post(t, s, pair("t1", jan, "cash", "eq", "100"))
	now = feb
	post(t, s, pair("t2", feb, "cash", "rev", "40"))

	repo := NewEntryRepository(s)

	byType, err := repo.List(ctx, nil, domain.EntryFilter{AccountType: domain.AccountTypeRevenue}, 10, 0)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Sales", byType[0].AccountName)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	byDate, err := repo.List(ctx, nil, domain.EntryFilter{StartDate: &start}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	paged, err := repo.List(ctx, nil, domain.EntryFilter{}, 2, 1)
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, int64(2), paged[0].SequenceNumber)
	assert.Equal(t, int64(3), paged[1].SequenceNumber)

	sums, err := repo.SumByAccounts(ctx, nil, "USD", nil, &jan)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "cash", sums[0].AccountID)
	assert.True(t, sums[0].TotalDebits.Equal(decimal.NewFromInt(100)))
}

func TestOutboxRepository_Lifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := NewOutboxRepository(s)

	tx, _ := s.Begin(ctx)
	require.NoError(t, repo.Create(ctx, tx, &domain.OutboxEvent{ID: "e1"}))
	require.NoError(t, repo.Create(ctx, tx, &domain.OutboxEvent{ID: "e2"}))
	require.NoError(t, tx.Commit(ctx))

	pending, err := repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	published := time.Now().Add(-time.Hour)
	require.NoError(t, repo.MarkPublished(ctx, "e1", published))

	pending, err = repo.GetUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "e2", pending[0].ID)

	require.NoError(t, repo.DeletePublished(ctx, time.Now()))
	assert.Len(t, s.outbox, 1)
}
