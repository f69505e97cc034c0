// Package memory is an in-process implementation of the ledger storage
// interfaces. Writes are buffered in a Tx and applied atomically on Commit;
// snapshots are identified by the highest committed sequence number.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// ErrTxDone is returned when a finished transaction is used again.
var ErrTxDone = errors.New("memory: transaction has already been committed or rolled back")

// ErrReadOnly is returned when a snapshot transaction is used for writes.
var ErrReadOnly = errors.New("memory: write in read-only transaction")

// Store holds the whole ledger state. Committed accounts and balances are
// never mutated in place; updates replace the pointer so snapshots can keep
// the old values.
type Store struct {
	mu sync.RWMutex

	accounts    map[string]*domain.Account
	accountKeys map[string]string // name|currency -> id

	entries       []*domain.JournalEntry // sequence order
	byTransaction map[string][]*domain.JournalEntry
	sequence      int64
	lastPosted    time.Time
	now           func() time.Time

	balances    map[string]*domain.AccountBalance
	idempotency map[string]*domain.IdempotencyRecord
	outbox      []*domain.OutboxEvent
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source used to stamp entries on commit.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty Store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		accounts:      make(map[string]*domain.Account),
		accountKeys:   make(map[string]string),
		byTransaction: make(map[string][]*domain.JournalEntry),
		balances:      make(map[string]*domain.AccountBalance),
		idempotency:   make(map[string]*domain.IdempotencyRecord),
		now:           func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// postedAt returns the commit timestamp for the next batch of entries.
// It never goes backwards, so created_at order agrees with sequence order.
// Callers hold s.mu.
func (s *Store) postedAt() time.Time {
	now := s.now()
	if now.Before(s.lastPosted) {
		now = s.lastPosted
	}
	s.lastPosted = now
	return now
}

func accountKey(name, currency string) string {
	return name + "|" + currency
}

// Begin starts a write transaction.
func (s *Store) Begin(_ context.Context) (usecase.Transaction, error) {
	return &Tx{store: s}, nil
}

// BeginSnapshot starts a read-only transaction pinned to the current state.
func (s *Store) BeginSnapshot(_ context.Context) (usecase.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make(map[string]*domain.Account, len(s.accounts))
	for id, a := range s.accounts {
		accounts[id] = a
	}
	balances := make(map[string]*domain.AccountBalance, len(s.balances))
	for id, b := range s.balances {
		balances[id] = b
	}

	return &Tx{
		store: s,
		snapshot: &snapshot{
			entries:  s.entries[:len(s.entries):len(s.entries)],
			accounts: accounts,
			balances: balances,
		},
	}, nil
}

type snapshot struct {
	entries  []*domain.JournalEntry
	accounts map[string]*domain.Account
	balances map[string]*domain.AccountBalance
}

// Tx buffers the writes of one storage transaction.
type Tx struct {
	store    *Store
	snapshot *snapshot
	done     bool

	accounts    []*domain.Account
	entries     []*domain.JournalEntry
	applied     []*domain.JournalEntry
	idempotency []*domain.IdempotencyRecord
	events      []*domain.OutboxEvent
}

func (t *Tx) writable() error {
	if t.done {
		return ErrTxDone
	}
	if t.snapshot != nil {
		return ErrReadOnly
	}
	return nil
}

// Commit applies every buffered write at once.
func (t *Tx) Commit(_ context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	if t.snapshot != nil {
		return nil
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := t.checkConflicts(); err != nil {
		return err
	}

	for _, a := range t.accounts {
		cp := *a
		s.accounts[a.ID] = &cp
		s.accountKeys[accountKey(a.Name, a.Currency)] = a.ID
	}

	var postedAt time.Time
	if len(t.entries) > 0 {
		postedAt = s.postedAt()
	}
	for _, e := range t.entries {
		s.sequence++
		e.SequenceNumber = s.sequence
		e.CreatedAt = postedAt
		cp := *e
		s.entries = append(s.entries, &cp)
		s.byTransaction[e.TransactionID] = append(s.byTransaction[e.TransactionID], &cp)
	}

	// Balance rows are replaced, not updated, in account id order.
	applied := append([]*domain.JournalEntry(nil), t.applied...)
	sort.SliceStable(applied, func(i, j int) bool { return applied[i].AccountID < applied[j].AccountID })
	for _, e := range applied {
		next := domain.AccountBalance{AccountID: e.AccountID, Currency: e.Currency}
		if prev, ok := s.balances[e.AccountID]; ok {
			next = *prev
		}
		next.Apply(e)
		s.balances[e.AccountID] = &next
	}

	for _, r := range t.idempotency {
		cp := *r
		s.idempotency[r.Key] = &cp
	}

	for _, ev := range t.events {
		cp := *ev
		s.outbox = append(s.outbox, &cp)
	}

	return nil
}

func (t *Tx) checkConflicts() error {
	s := t.store
	for _, a := range t.accounts {
		if _, ok := s.accountKeys[accountKey(a.Name, a.Currency)]; ok {
			return domain.ErrDuplicateAccount
		}
	}
	for _, r := range t.idempotency {
		if _, ok := s.idempotency[r.Key]; ok {
			return domain.ErrDuplicateIdempotencyKey
		}
	}
	return nil
}

// Rollback discards the buffered writes. It is a no-op after Commit.
func (t *Tx) Rollback(_ context.Context) error {
	t.done = true
	t.accounts, t.entries, t.applied, t.idempotency, t.events = nil, nil, nil, nil, nil
	return nil
}

// view is a consistent read-only projection of the store, either a snapshot
// or the latest committed state.
type view struct {
	entries  []*domain.JournalEntry
	accounts map[string]*domain.Account
	balances map[string]*domain.AccountBalance
}

// read runs fn against the snapshot of tx, or the latest state when tx is nil.
func (s *Store) read(tx usecase.Transaction, fn func(v view) error) error {
	if tx != nil {
		t, ok := tx.(*Tx)
		if !ok {
			return errors.New("memory: foreign transaction")
		}
		if t.snapshot != nil {
			return fn(view{entries: t.snapshot.entries, accounts: t.snapshot.accounts, balances: t.snapshot.balances})
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(view{entries: s.entries, accounts: s.accounts, balances: s.balances})
}

func asTx(tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, errors.New("memory: foreign transaction")
	}
	if err := t.writable(); err != nil {
		return nil, err
	}
	return t, nil
}

// Compile-time checks
var (
	_ usecase.TransactionManager    = (*Store)(nil)
	_ usecase.AccountRepository     = (*AccountRepository)(nil)
	_ usecase.EntryRepository       = (*EntryRepository)(nil)
	_ usecase.BalanceRepository     = (*BalanceRepository)(nil)
	_ usecase.LedgerRepository      = (*LedgerRepository)(nil)
	_ usecase.IdempotencyRepository = (*IdempotencyRepository)(nil)
	_ usecase.OutboxRepository      = (*OutboxRepository)(nil)
)
