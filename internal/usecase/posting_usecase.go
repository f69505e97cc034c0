package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
)

// PostingUseCase records balanced transactions in the journal.
type PostingUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	entryRepo       EntryRepository
	balanceRepo     BalanceRepository
	idempotencyRepo IdempotencyRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	opts            options
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	balanceRepo BalanceRepository,
	idempotencyRepo IdempotencyRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	opts ...Option,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		entryRepo:       entryRepo,
		balanceRepo:     balanceRepo,
		idempotencyRepo: idempotencyRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		opts:            buildOptions(opts),
	}
}

// PostTransactionInput represents input for posting a transaction.
type PostTransactionInput struct {
	IdempotencyKey string
	Lines          []domain.EntryLine
}

// PostTransactionResult is the outcome of a posting.
type PostTransactionResult struct {
	TransactionID string
	Entries       []*domain.JournalEntry
	// Replayed is set when an idempotency key matched an earlier posting.
	Replayed bool
}

// PostTransaction validates the lines and commits them atomically.
// Nothing is written when validation fails.
func (uc *PostingUseCase) PostTransaction(ctx context.Context, input PostTransactionInput) (*PostTransactionResult, error) {
	result, err := uc.post(ctx, input.Lines, input.IdempotencyKey, nil)
	if err != nil {
		uc.opts.metrics.PostingFailed(failureReason(err))
		return nil, err
	}
	return result, nil
}

// ReverseTransaction posts the mirror image of an earlier transaction.
// Repeated calls for the same transaction return the same reversal.
func (uc *PostingUseCase) ReverseTransaction(ctx context.Context, transactionID, description string) (*PostTransactionResult, error) {
	original, err := uc.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.EntryLine, 0, len(original))
	for _, e := range original {
		desc := description
		if desc == "" {
			desc = "Reversal of " + e.TransactionID
			if e.Description != "" {
				desc += ": " + e.Description
			}
		}
		lines = append(lines, domain.EntryLine{
			AccountID:   e.AccountID,
			Currency:    e.Currency,
			Description: desc,
			Debit:       e.Credit,
			Credit:      e.Debit,
		})
	}

	result, err := uc.post(ctx, lines, ReversalKeyPrefix+transactionID, &transactionID)
	if err != nil {
		uc.opts.metrics.PostingFailed(failureReason(err))
		return nil, err
	}
	return result, nil
}

// GetTransaction returns the lines of a transaction in submission order.
func (uc *PostingUseCase) GetTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error) {
	entries, err := uc.entryRepo.GetByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return entries, nil
}

func (uc *PostingUseCase) post(ctx context.Context, lines []domain.EntryLine, key string, reverses *string) (*PostTransactionResult, error) {
	// 1. Structural shape
	currency, err := domain.ValidateLines(lines)
	if err != nil {
		return nil, err
	}
	if len(key) > MaxIdempotencyKeyLength {
		return nil, fmt.Errorf("%w: idempotency key exceeds %d characters", domain.ErrInvalidTransaction, MaxIdempotencyKeyLength)
	}

	hash := domain.RequestHash(lines)
	if key != "" {
		if replay, err := uc.replay(ctx, key, hash); err != nil || replay != nil {
			return replay, err
		}
	}

	// 2. Account existence and state
	if err := uc.checkAccounts(ctx, lines, currency); err != nil {
		return nil, err
	}

	// 3. Exact balance
	if err := domain.CheckBalanced(lines); err != nil {
		return nil, err
	}

	now := uc.opts.clock()
	transactionID := uc.idGen.Generate()
	entries := make([]*domain.JournalEntry, len(lines))
	total := decimal.Zero
	for i, l := range lines {
		entries[i] = &domain.JournalEntry{
			ID:                    uc.idGen.Generate(),
			TransactionID:         transactionID,
			AccountID:             l.AccountID,
			Currency:              currency,
			Description:           l.Description,
			Debit:                 l.Debit,
			Credit:                l.Credit,
			LineNumber:            i + 1,
			ReversesTransactionID: reverses,
			CreatedAt:             now,
		}
		total = total.Add(l.Debit)
	}

	var record *domain.IdempotencyRecord
	if key != "" {
		record = &domain.IdempotencyRecord{
			Key:           key,
			RequestHash:   hash,
			TransactionID: transactionID,
			CreatedAt:     now,
		}
	}

	event := domain.NewTransactionEvent(uc.idGen.Generate(), entries, total)

	err = uc.opts.retrier.Retry(ctx, func() error {
		return uc.commit(ctx, entries, record, event)
	})
	if err != nil {
		if record != nil && errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
			return uc.resolveRace(ctx, key, hash)
		}
		return nil, fmt.Errorf("%w: post transaction: %w", domain.ErrStorageFailure, err)
	}

	if record != nil && uc.opts.idempotencyCache != nil {
		if err := uc.opts.idempotencyCache.Set(ctx, record); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("idempotency_key", key).Msg("idempotency cache write failed")
		}
	}

	uc.opts.metrics.TransactionPosted(currency, len(entries))

	return &PostTransactionResult{TransactionID: transactionID, Entries: entries}, nil
}

func (uc *PostingUseCase) commit(
	ctx context.Context,
	entries []*domain.JournalEntry,
	record *domain.IdempotencyRecord,
	event *domain.OutboxEvent,
) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.entryRepo.CreateBatch(txCtx, tx, entries); err != nil {
		return err
	}

	if err := uc.balanceRepo.Apply(txCtx, tx, entries); err != nil {
		return err
	}

	if record != nil {
		if err := uc.idempotencyRepo.Create(txCtx, tx, record); err != nil {
			return err
		}
	}

	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

// checkAccounts loads the referenced accounts in id order and verifies that
// each exists, is active and is held in the transaction currency.
func (uc *PostingUseCase) checkAccounts(ctx context.Context, lines []domain.EntryLine, currency string) error {
	ids := uniqueAccountIDs(lines)

	accounts, err := uc.accountRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: load accounts: %w", domain.ErrStorageFailure, err)
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	for _, id := range ids {
		account, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
		}
		if !account.IsActive() {
			return fmt.Errorf("%w: %s", domain.ErrAccountInactive, id)
		}
		if account.Currency != currency {
			return fmt.Errorf("%w: account %s is held in %s", domain.ErrCurrencyMismatch, id, account.Currency)
		}
	}

	return nil
}

// replay returns the earlier result for a known key, or nil when the key is new.
func (uc *PostingUseCase) replay(ctx context.Context, key, hash string) (*PostTransactionResult, error) {
	record, err := uc.findRecord(ctx, key)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return uc.replayRecord(ctx, record, hash)
}

// resolveRace handles a key claimed by a concurrent posting that committed first.
func (uc *PostingUseCase) resolveRace(ctx context.Context, key, hash string) (*PostTransactionResult, error) {
	record, err := uc.idempotencyRepo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: load idempotency record: %w", domain.ErrStorageFailure, err)
	}
	if record == nil {
		return nil, fmt.Errorf("%w: idempotency key %s vanished after conflict", domain.ErrStorageFailure, key)
	}
	return uc.replayRecord(ctx, record, hash)
}

func (uc *PostingUseCase) replayRecord(ctx context.Context, record *domain.IdempotencyRecord, hash string) (*PostTransactionResult, error) {
	if record.RequestHash != hash {
		return nil, domain.ErrIdempotencyConflict
	}

	entries, err := uc.entryRepo.GetByTransaction(ctx, record.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("%w: load replayed transaction: %w", domain.ErrStorageFailure, err)
	}

	return &PostTransactionResult{
		TransactionID: record.TransactionID,
		Entries:       entries,
		Replayed:      true,
	}, nil
}

func (uc *PostingUseCase) findRecord(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	cache := uc.opts.idempotencyCache
	if cache != nil {
		record, err := cache.Get(ctx, key)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("idempotency_key", key).Msg("idempotency cache read failed")
		} else if record != nil {
			return record, nil
		}
	}

	record, err := uc.idempotencyRepo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: load idempotency record: %w", domain.ErrStorageFailure, err)
	}

	if record != nil && cache != nil {
		if err := cache.Set(ctx, record); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("idempotency_key", key).Msg("idempotency cache write failed")
		}
	}

	return record, nil
}

// uniqueAccountIDs returns the distinct account ids of the lines in sorted
// order, the order in which storage locks are taken.
func uniqueAccountIDs(lines []domain.EntryLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	sort.Strings(ids)
	return ids
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransaction):
		return "invalid_transaction"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInvalidCurrency):
		return "invalid_currency"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, domain.ErrUnbalancedTransaction):
		return "unbalanced"
	case errors.Is(err, domain.ErrIdempotencyConflict):
		return "idempotency_conflict"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return "transaction_not_found"
	default:
		return "storage_failure"
	}
}
