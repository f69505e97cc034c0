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

func TestAccountUseCase_RegisterAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.RegisterAccountInput
		expectedErr error
	}{
		{
			name:  "asset account",
			input: usecase.RegisterAccountInput{Type: "asset", Name: "Cash", Currency: "usd"},
		},
		{
			name:  "tagged revenue account",
			input: usecase.RegisterAccountInput{Type: "Revenue", Name: "Sales", Currency: "EUR", CashFlowCategory: "operating"},
		},
		{
			name:        "unknown type",
			input:       usecase.RegisterAccountInput{Type: "contra", Name: "X", Currency: "USD"},
			expectedErr: domain.ErrInvalidAccountType,
		},
		{
			name:        "blank name",
			input:       usecase.RegisterAccountInput{Type: "asset", Name: " ", Currency: "USD"},
			expectedErr: domain.ErrInvalidAccountName,
		},
		{
			name:        "unknown currency",
			input:       usecase.RegisterAccountInput{Type: "asset", Name: "Cash", Currency: "ABC"},
			expectedErr: domain.ErrInvalidCurrency,
		},
		{
			name:        "unknown cash flow category",
			input:       usecase.RegisterAccountInput{Type: "asset", Name: "Cash", Currency: "USD", CashFlowCategory: "other"},
			expectedErr: domain.ErrInvalidCashFlowCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger(t)

			account, err := l.accounts.RegisterAccount(context.Background(), tt.input)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, account.ID)
			assert.Equal(t, domain.AccountStatusActive, account.Status)
			assert.Equal(t, domain.NormalizeCurrency(tt.input.Currency), account.Currency)
		})
	}
}

func TestAccountUseCase_RegisterDuplicate(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	l.register(t, "asset", "Cash", "USD")

	_, err := l.accounts.RegisterAccount(ctx, usecase.RegisterAccountInput{Type: "expense", Name: "Cash", Currency: "USD"})
	require.ErrorIs(t, err, domain.ErrDuplicateAccount)

	// Same name in another currency is a different account.
	_, err = l.accounts.RegisterAccount(ctx, usecase.RegisterAccountInput{Type: "asset", Name: "Cash", Currency: "EUR"})
	require.NoError(t, err)
}

func TestAccountUseCase_RegisterEmitsEvent(t *testing.T) {
	l := newTestLedger(t)
	a := l.register(t, "liability", "Payables", "GBP")

	events, err := memoryOutbox(l).GetUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeAccountRegistered, events[0].EventType)
	assert.Equal(t, a.ID, events[0].AggregateID)
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	l.register(t, "asset", "Cash", "USD")
	l.register(t, "asset", "Bank", "USD")
	l.register(t, "revenue", "Sales", "USD")
	l.register(t, "asset", "Cash", "EUR")

	all, err := l.accounts.ListAccounts(ctx, usecase.ListAccountsInput{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	assets, err := l.accounts.ListAccounts(ctx, usecase.ListAccountsInput{Type: "asset", Currency: "usd"})
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "Bank", assets[0].Name)

	_, err = l.accounts.ListAccounts(ctx, usecase.ListAccountsInput{Type: "bogus"})
	require.ErrorIs(t, err, domain.ErrInvalidAccountType)
}

func TestAccountUseCase_SetStatusAndCategory(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	a := l.register(t, "asset", "Cash", "USD")

	updated, err := l.accounts.SetAccountStatus(ctx, a.ID, "inactive")
	require.NoError(t, err)
	assert.False(t, updated.IsActive())

	inactive, err := l.accounts.ListAccounts(ctx, usecase.ListAccountsInput{Status: "inactive"})
	require.NoError(t, err)
	assert.Len(t, inactive, 1)

	updated, err = l.accounts.SetCashFlowCategory(ctx, a.ID, "financing")
	require.NoError(t, err)
	assert.Equal(t, domain.CashFlowFinancing, updated.CashFlowCategory)

	_, err = l.accounts.SetAccountStatus(ctx, a.ID, "frozen")
	require.ErrorIs(t, err, domain.ErrInvalidAccountStatus)

	_, err = l.accounts.SetAccountStatus(ctx, "missing", "active")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountUseCase_GetAccountCache(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockAccountRepository(ctrl)
	cache := mocks.NewMockAccountCache(ctrl)
	cached := &domain.Account{ID: "acc-1", Name: "Cash"}

	t.Run("hit skips repository", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "acc-1").Return(cached, nil)

		uc := usecase.NewAccountUseCase(nil, repo, nil, nil, usecase.WithAccountCache(cache))
		got, err := uc.GetAccount(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Same(t, cached, got)
	})

	t.Run("miss fills cache", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "acc-1").Return(nil, nil)
		repo.EXPECT().GetByID(gomock.Any(), "acc-1").Return(cached, nil)
		cache.EXPECT().Set(gomock.Any(), cached).Return(nil)

		uc := usecase.NewAccountUseCase(nil, repo, nil, nil, usecase.WithAccountCache(cache))
		_, err := uc.GetAccount(context.Background(), "acc-1")
		require.NoError(t, err)
	})

	t.Run("cache failure falls back to repository", func(t *testing.T) {
		cache.EXPECT().Get(gomock.Any(), "acc-1").Return(nil, errors.New("redis down"))
		repo.EXPECT().GetByID(gomock.Any(), "acc-1").Return(cached, nil)
		cache.EXPECT().Set(gomock.Any(), cached).Return(errors.New("redis down"))

		uc := usecase.NewAccountUseCase(nil, repo, nil, nil, usecase.WithAccountCache(cache))
		got, err := uc.GetAccount(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "Cash", got.Name)
	})

	t.Run("status change invalidates", func(t *testing.T) {
		repo.EXPECT().UpdateStatus(gomock.Any(), "acc-1", domain.AccountStatusInactive, gomock.Any()).Return(nil)
		cache.EXPECT().Delete(gomock.Any(), "acc-1").Return(nil)
		repo.EXPECT().GetByID(gomock.Any(), "acc-1").Return(cached, nil)

		uc := usecase.NewAccountUseCase(nil, repo, nil, nil, usecase.WithAccountCache(cache))
		_, err := uc.SetAccountStatus(context.Background(), "acc-1", "inactive")
		require.NoError(t, err)
	})
}

func TestAccountUseCase_RegisterStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	txManager := mocks.NewMockTransactionManager(ctrl)
	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().Return("acc-1")
	txManager.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("pool exhausted"))

	uc := usecase.NewAccountUseCase(txManager, nil, nil, idGen)
	_, err := uc.RegisterAccount(context.Background(), usecase.RegisterAccountInput{Type: "asset", Name: "Cash", Currency: "USD"})
	require.ErrorIs(t, err, domain.ErrStorageFailure)
}
