package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/gojournal/internal/domain"
)

// AccountUseCase handles the chart of accounts.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	opts        options
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	opts ...Option,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		opts:        buildOptions(opts),
	}
}

// RegisterAccountInput represents input for registering an account.
type RegisterAccountInput struct {
	Type             string
	Name             string
	Currency         string
	CashFlowCategory string
}

// RegisterAccount adds an account to the chart of accounts.
func (uc *AccountUseCase) RegisterAccount(ctx context.Context, input RegisterAccountInput) (*domain.Account, error) {
	accountType, err := domain.ParseAccountType(input.Type)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	category, err := domain.ParseCashFlowCategory(input.CashFlowCategory)
	if err != nil {
		return nil, err
	}

	now := uc.opts.clock()
	account := &domain.Account{
		ID:               uc.idGen.Generate(),
		Type:             accountType,
		Name:             strings.TrimSpace(input.Name),
		Currency:         domain.NormalizeCurrency(input.Currency),
		Status:           domain.AccountStatusActive,
		CashFlowCategory: category,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.opts.retrier.Retry(ctx, func() error {
		return uc.createAccount(ctx, account)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: register account: %w", domain.ErrStorageFailure, err)
	}

	uc.opts.metrics.AccountRegistered(string(account.Type))

	return account, nil
}

func (uc *AccountUseCase) createAccount(ctx context.Context, account *domain.Account) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.accountRepo.Create(txCtx, tx, account); err != nil {
		return err
	}

	event := domain.NewAccountRegisteredEvent(uc.idGen.Generate(), account)
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	cache := uc.opts.accountCache
	if cache != nil {
		cached, err := cache.Get(ctx, id)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("account_id", id).Msg("account cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(ctx, account); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("account_id", id).Msg("account cache write failed")
		}
	}

	return account, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Type     string
	Currency string
	Status   string
}

// ListAccounts lists accounts matching the optional filters, in name order.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	var filter domain.AccountFilter

	if input.Type != "" {
		t, err := domain.ParseAccountType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = t
	}

	if input.Currency != "" {
		if err := domain.ValidateCurrency(input.Currency); err != nil {
			return nil, err
		}
		filter.Currency = domain.NormalizeCurrency(input.Currency)
	}

	if input.Status != "" {
		s, err := domain.ParseAccountStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = s
	}

	return uc.accountRepo.List(ctx, filter)
}

// SetAccountStatus flips the soft status flag of an account.
func (uc *AccountUseCase) SetAccountStatus(ctx context.Context, id, status string) (*domain.Account, error) {
	s, err := domain.ParseAccountStatus(status)
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateStatus(ctx, id, s, uc.opts.clock()); err != nil {
		return nil, err
	}

	return uc.reload(ctx, id)
}

// SetCashFlowCategory sets the tag that places an account in the cash-flow statement.
func (uc *AccountUseCase) SetCashFlowCategory(ctx context.Context, id, category string) (*domain.Account, error) {
	c, err := domain.ParseCashFlowCategory(category)
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateCashFlowCategory(ctx, id, c, uc.opts.clock()); err != nil {
		return nil, err
	}

	return uc.reload(ctx, id)
}

func (uc *AccountUseCase) reload(ctx context.Context, id string) (*domain.Account, error) {
	if cache := uc.opts.accountCache; cache != nil {
		if err := cache.Delete(ctx, id); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("account_id", id).Msg("account cache invalidation failed")
		}
	}

	return uc.accountRepo.GetByID(ctx, id)
}
