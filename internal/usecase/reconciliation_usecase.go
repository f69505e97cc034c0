package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
)

// ErrInconsistentLedger is returned when the ledger is not balanced.
var ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")

// ReconciliationUseCase checks the materialized balances and the journal
// against each other.
type ReconciliationUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	balanceRepo BalanceRepository
	ledgerRepo  LedgerRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	balanceRepo BalanceRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		balanceRepo: balanceRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// ReconcileAccount compares one account's materialized balance with the sum
// of its entries.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*domain.ReconciliationReport, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	report := &domain.ReconciliationReport{AccountsChecked: 1}
	err := readSnapshot(ctx, uc.txManager, func(tx Transaction) error {
		stored, err := uc.balanceRepo.Get(ctx, tx, accountID)
		if err != nil {
			return err
		}
		computed, err := uc.entryRepo.SumByAccount(ctx, tx, accountID, nil)
		if err != nil {
			return err
		}
		if d, ok := compareBalance(stored, computed); !ok {
			report.Discrepancies = append(report.Discrepancies, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// ReconcileAll reconciles every account that has a balance row or entries.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) (*domain.ReconciliationReport, error) {
	report := &domain.ReconciliationReport{}
	err := readSnapshot(ctx, uc.txManager, func(tx Transaction) error {
		stored, err := uc.balanceRepo.List(ctx, tx)
		if err != nil {
			return err
		}
		computed, err := uc.entryRepo.SumByAccounts(ctx, tx, "", nil, nil)
		if err != nil {
			return err
		}

		storedByID := make(map[string]*domain.AccountBalance, len(stored))
		for _, b := range stored {
			storedByID[b.AccountID] = b
		}

		for _, totals := range computed {
			b, ok := storedByID[totals.AccountID]
			if !ok {
				b = &domain.AccountBalance{AccountID: totals.AccountID}
			}
			delete(storedByID, totals.AccountID)
			report.AccountsChecked++
			if d, ok := compareBalance(b, totals); !ok {
				report.Discrepancies = append(report.Discrepancies, d)
			}
		}

		// Balance rows without any entry behind them.
		for _, b := range stored {
			if _, ok := storedByID[b.AccountID]; !ok {
				continue
			}
			report.AccountsChecked++
			empty := domain.AccountTotals{AccountID: b.AccountID, TotalDebits: decimal.Zero, TotalCredits: decimal.Zero}
			if d, ok := compareBalance(b, empty); !ok {
				report.Discrepancies = append(report.Discrepancies, d)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// CheckConsistency verifies that, per currency, all debits in the journal
// equal all credits.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	report := &domain.ConsistencyReport{Consistent: true}
	err := readSnapshot(ctx, uc.txManager, func(tx Transaction) error {
		totals, err := uc.ledgerRepo.TotalsByCurrency(ctx, tx)
		if err != nil {
			return err
		}
		for _, t := range totals {
			t.Consistent = t.TotalDebits.Equal(t.TotalCredits)
			if !t.Consistent {
				report.Consistent = false
			}
			report.Currencies = append(report.Currencies, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func compareBalance(stored *domain.AccountBalance, computed domain.AccountTotals) (domain.Discrepancy, bool) {
	ok := stored.TotalDebits.Equal(computed.TotalDebits) &&
		stored.TotalCredits.Equal(computed.TotalCredits) &&
		stored.LastSequence == computed.LastSequence
	return domain.Discrepancy{
		AccountID:        stored.AccountID,
		Currency:         stored.Currency,
		StoredDebits:     stored.TotalDebits,
		StoredCredits:    stored.TotalCredits,
		ComputedDebits:   computed.TotalDebits,
		ComputedCredits:  computed.TotalCredits,
		StoredSequence:   stored.LastSequence,
		ComputedSequence: computed.LastSequence,
	}, ok
}
