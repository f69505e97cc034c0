package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
	"github.com/iho/gojournal/internal/usecase/mocks"
)

type reconMocks struct {
	txManager *mocks.MockTransactionManager
	tx        *mocks.MockTransaction
	accounts  *mocks.MockAccountRepository
	entries   *mocks.MockEntryRepository
	balances  *mocks.MockBalanceRepository
	ledger    *mocks.MockLedgerRepository
}

func newReconMocks(t *testing.T) (*reconMocks, *usecase.ReconciliationUseCase) {
	ctrl := gomock.NewController(t)
	m := &reconMocks{
		txManager: mocks.NewMockTransactionManager(ctrl),
		tx:        mocks.NewMockTransaction(ctrl),
		accounts:  mocks.NewMockAccountRepository(ctrl),
		entries:   mocks.NewMockEntryRepository(ctrl),
		balances:  mocks.NewMockBalanceRepository(ctrl),
		ledger:    mocks.NewMockLedgerRepository(ctrl),
	}
	return m, usecase.NewReconciliationUseCase(m.txManager, m.accounts, m.entries, m.balances, m.ledger)
}

func (m *reconMocks) expectSnapshot(commit bool) {
	m.txManager.EXPECT().BeginSnapshot(gomock.Any()).Return(m.tx, nil)
	if commit {
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	}
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
}

func TestReconcileAll_ReportsDiscrepancies(t *testing.T) {
	m, uc := newReconMocks(t)
	m.expectSnapshot(true)

	m.balances.EXPECT().List(gomock.Any(), m.tx).Return([]*domain.AccountBalance{
		{AccountID: "cash", Currency: "USD", TotalDebits: dec("10"), TotalCredits: dec("0"), LastSequence: 1},
		{AccountID: "equity", Currency: "USD", TotalDebits: dec("0"), TotalCredits: dec("7"), LastSequence: 2},
		{AccountID: "orphan", Currency: "USD", TotalDebits: dec("1"), TotalCredits: dec("0"), LastSequence: 9},
	}, nil)
	m.entries.EXPECT().SumByAccounts(gomock.Any(), m.tx, "", nil, nil).Return([]domain.AccountTotals{
		{AccountID: "cash", TotalDebits: dec("10"), TotalCredits: dec("0"), LastSequence: 1},
		{AccountID: "equity", TotalDebits: dec("0"), TotalCredits: dec("10"), LastSequence: 2},
		{AccountID: "fresh", TotalDebits: dec("0"), TotalCredits: dec("3"), LastSequence: 3},
	}, nil)

	report, err := uc.ReconcileAll(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Reconciled())
	assert.Equal(t, 4, report.AccountsChecked)
	require.Len(t, report.Discrepancies, 3)

	assert.Equal(t, "equity", report.Discrepancies[0].AccountID)
	requireDecimal(t, "7", report.Discrepancies[0].StoredCredits)
	requireDecimal(t, "10", report.Discrepancies[0].ComputedCredits)

	// Entries without a balance row.
	assert.Equal(t, "fresh", report.Discrepancies[1].AccountID)
	assert.Equal(t, int64(0), report.Discrepancies[1].StoredSequence)
	assert.Equal(t, int64(3), report.Discrepancies[1].ComputedSequence)

	// A balance row without entries.
	assert.Equal(t, "orphan", report.Discrepancies[2].AccountID)
	assert.True(t, report.Discrepancies[2].ComputedDebits.IsZero())
}

func TestReconcileAll_StorageError(t *testing.T) {
	m, uc := newReconMocks(t)
	m.expectSnapshot(false)

	m.balances.EXPECT().List(gomock.Any(), m.tx).Return(nil, errors.New("connection reset"))

	_, err := uc.ReconcileAll(context.Background())
	require.ErrorIs(t, err, domain.ErrStorageFailure)
}

func TestReconcileAccount_SequenceMismatch(t *testing.T) {
	m, uc := newReconMocks(t)

	m.accounts.EXPECT().GetByID(gomock.Any(), "cash").Return(&domain.Account{ID: "cash", Currency: "USD"}, nil)
	m.expectSnapshot(true)
	m.balances.EXPECT().Get(gomock.Any(), m.tx, "cash").Return(&domain.AccountBalance{
		AccountID: "cash", Currency: "USD", TotalDebits: dec("5"), TotalCredits: dec("0"), LastSequence: 4,
	}, nil)
	m.entries.EXPECT().SumByAccount(gomock.Any(), m.tx, "cash", nil).Return(domain.AccountTotals{
		AccountID: "cash", TotalDebits: dec("5"), TotalCredits: dec("0"), LastSequence: 6,
	}, nil)

	report, err := uc.ReconcileAccount(context.Background(), "cash")
	require.NoError(t, err)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, int64(4), report.Discrepancies[0].StoredSequence)
	assert.Equal(t, int64(6), report.Discrepancies[0].ComputedSequence)
}

func TestCheckConsistency_Unbalanced(t *testing.T) {
	m, uc := newReconMocks(t)
	m.expectSnapshot(true)

	m.ledger.EXPECT().TotalsByCurrency(gomock.Any(), m.tx).Return([]domain.CurrencyTotals{
		{Currency: "EUR", TotalDebits: dec("4"), TotalCredits: dec("4")},
		{Currency: "USD", TotalDebits: dec("10"), TotalCredits: dec("9.99")},
	}, nil)

	report, err := uc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	require.Len(t, report.Currencies, 2)
	assert.True(t, report.Currencies[0].Consistent)
	assert.False(t, report.Currencies[1].Consistent)
}
