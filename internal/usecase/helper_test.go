package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/gojournal/internal/adapter/repository/memory"
	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

type seqIDs struct {
	n atomic.Int64
}

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("id-%08d", g.n.Add(1))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// testLedger wires every use case to one in-memory store.
type testLedger struct {
	store    *memory.Store
	clock    *fakeClock
	accounts *usecase.AccountUseCase
	posting  *usecase.PostingUseCase
	balances *usecase.BalanceUseCase
	recon    *usecase.ReconciliationUseCase
	reports  *usecase.ReportUseCase
	entries  *usecase.EntryUseCase
}

func newTestLedger(t *testing.T, extra ...usecase.Option) *testLedger {
	t.Helper()

	clock := &fakeClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	store := memory.NewStore(memory.WithClock(clock.Now))
	ids := &seqIDs{}
	opts := append([]usecase.Option{usecase.WithClock(clock.Now)}, extra...)

	accountRepo := memory.NewAccountRepository(store)
	entryRepo := memory.NewEntryRepository(store)
	balanceRepo := memory.NewBalanceRepository(store)
	outboxRepo := memory.NewOutboxRepository(store)

	return &testLedger{
		store:    store,
		clock:    clock,
		accounts: usecase.NewAccountUseCase(store, accountRepo, outboxRepo, ids, opts...),
		posting: usecase.NewPostingUseCase(store, accountRepo, entryRepo, balanceRepo,
			memory.NewIdempotencyRepository(store), outboxRepo, ids, opts...),
		balances: usecase.NewBalanceUseCase(store, accountRepo, entryRepo, balanceRepo, opts...),
		recon:    usecase.NewReconciliationUseCase(store, accountRepo, entryRepo, balanceRepo, memory.NewLedgerRepository(store)),
		reports:  usecase.NewReportUseCase(store, accountRepo, entryRepo, opts...),
		entries:  usecase.NewEntryUseCase(store, entryRepo),
	}
}

func (l *testLedger) register(t *testing.T, typ, name, currency string) *domain.Account {
	t.Helper()
	a, err := l.accounts.RegisterAccount(context.Background(), usecase.RegisterAccountInput{
		Type:     typ,
		Name:     name,
		Currency: currency,
	})
	require.NoError(t, err)
	return a
}

func (l *testLedger) transfer(t *testing.T, debit, credit *domain.Account, amount string) string {
	t.Helper()
	res, err := l.posting.PostTransaction(context.Background(), usecase.PostTransactionInput{
		Lines: []domain.EntryLine{dr(debit, amount), cr(credit, amount)},
	})
	require.NoError(t, err)
	return res.TransactionID
}

func dr(a *domain.Account, amount string) domain.EntryLine {
	return domain.EntryLine{AccountID: a.ID, Currency: a.Currency, Debit: decimal.RequireFromString(amount)}
}

func cr(a *domain.Account, amount string) domain.EntryLine {
	return domain.EntryLine{AccountID: a.ID, Currency: a.Currency, Credit: decimal.RequireFromString(amount)}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got.String())
}

func memoryOutbox(l *testLedger) *memory.OutboxRepository {
	return memory.NewOutboxRepository(l.store)
}
