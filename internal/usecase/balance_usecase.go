package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/gojournal/internal/domain"
)

// BalanceUseCase derives account balances from the journal.
type BalanceUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	balanceRepo BalanceRepository
	opts        options
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	balanceRepo BalanceRepository,
	opts ...Option,
) *BalanceUseCase {
	return &BalanceUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		balanceRepo: balanceRepo,
		opts:        buildOptions(opts),
	}
}

// ComputeBalance returns the balance of an account, signed by its normal side.
// Without asOf the materialized balance is returned; with asOf the journal is
// summed over entries created at or before asOf.
func (uc *BalanceUseCase) ComputeBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.Balance, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	balance := &domain.Balance{
		AccountID:   account.ID,
		Currency:    account.Currency,
		AccountType: account.Type,
	}

	if asOf == nil {
		stored, err := uc.balanceRepo.Get(ctx, nil, accountID)
		if err != nil {
			return nil, fmt.Errorf("%w: load balance: %w", domain.ErrStorageFailure, err)
		}
		balance.AsOf = uc.opts.clock()
		balance.TotalDebits = stored.TotalDebits
		balance.TotalCredits = stored.TotalCredits
		balance.LastSequence = stored.LastSequence
	} else {
		totals, err := uc.entryRepo.SumByAccount(ctx, nil, accountID, asOf)
		if err != nil {
			return nil, fmt.Errorf("%w: sum entries: %w", domain.ErrStorageFailure, err)
		}
		balance.AsOf = *asOf
		balance.TotalDebits = totals.TotalDebits
		balance.TotalCredits = totals.TotalCredits
		balance.LastSequence = totals.LastSequence
	}

	balance.Balance = domain.NormalBalance(account.Type, balance.TotalDebits, balance.TotalCredits)

	return balance, nil
}
