package usecase

import (
	"context"
	"time"

	"github.com/iho/gojournal/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByIDs returns the accounts found among ids, ordered by id.
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Account, error)
	List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
	ListTx(ctx context.Context, tx Transaction, filter domain.AccountFilter) ([]*domain.Account, error)
	UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error
	UpdateCashFlowCategory(ctx context.Context, id string, category domain.CashFlowCategory, updatedAt time.Time) error
}

// EntryRepository defines data access for the journal.
type EntryRepository interface {
	// CreateBatch appends the entries of one transaction. Sequence numbers
	// are assigned by storage in slice order.
	CreateBatch(ctx context.Context, tx Transaction, entries []*domain.JournalEntry) error
	GetByTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error)
	// SumByAccount totals one account's entries created at or before asOf (all when nil).
	SumByAccount(ctx context.Context, tx Transaction, accountID string, asOf *time.Time) (domain.AccountTotals, error)
	// SumByAccounts totals entries per account inside the optional bounds.
	// An empty currency matches every currency.
	SumByAccounts(ctx context.Context, tx Transaction, currency string, from, to *time.Time) ([]domain.AccountTotals, error)
	List(ctx context.Context, tx Transaction, filter domain.EntryFilter, limit, offset int) ([]*domain.EntryView, error)
	Count(ctx context.Context, tx Transaction, filter domain.EntryFilter) (int, error)
	// ListCashFlow returns period entries on accounts carrying a cash-flow category.
	ListCashFlow(ctx context.Context, tx Transaction, currency string, period domain.Period) ([]*domain.EntryView, error)
}

// BalanceRepository defines data access for materialized account balances.
type BalanceRepository interface {
	// Apply folds posted entries into the running totals of their accounts,
	// locking balance rows in account id order.
	Apply(ctx context.Context, tx Transaction, entries []*domain.JournalEntry) error
	// Get returns a zero balance when the account has no postings yet.
	Get(ctx context.Context, tx Transaction, accountID string) (*domain.AccountBalance, error)
	List(ctx context.Context, tx Transaction) ([]*domain.AccountBalance, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	TotalsByCurrency(ctx context.Context, tx Transaction) ([]domain.CurrencyTotals, error)
}

// IdempotencyRepository persists idempotency records alongside postings.
type IdempotencyRepository interface {
	// Create fails with domain.ErrDuplicateIdempotencyKey when the key exists.
	Create(ctx context.Context, tx Transaction, record *domain.IdempotencyRecord) error
	// Get returns nil when the key is unknown.
	Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction. Read methods that take a
// Transaction read outside any transaction when it is nil.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
	// BeginSnapshot starts a read-only transaction whose reads all observe
	// the same committed state.
	BeginSnapshot(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// AccountCache is a read-through cache of accounts.
type AccountCache interface {
	// Get returns nil on a miss.
	Get(ctx context.Context, id string) (*domain.Account, error)
	Set(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
}

// IdempotencyCache keeps a look-aside copy of committed idempotency records.
type IdempotencyCache interface {
	// Get returns nil on a miss.
	Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
	Set(ctx context.Context, record *domain.IdempotencyRecord) error
}

// MetricsRecorder receives business metrics from the use cases.
type MetricsRecorder interface {
	TransactionPosted(currency string, lines int)
	PostingFailed(reason string)
	AccountRegistered(accountType string)
	ReportGenerated(report string, duration time.Duration)
}

// Clock returns the current time.
type Clock func() time.Time
