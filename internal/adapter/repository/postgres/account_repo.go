package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/infrastructure/postgres/generated"
	"github.com/iho/gojournal/internal/usecase"
)

const accountNameCurrencyKey = "accounts_name_currency_key"

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create inserts an account inside tx.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	err := queriesFor(r.pool, tx).CreateAccount(ctx, generated.CreateAccountParams{
		ID:               account.ID,
		Name:             account.Name,
		Currency:         account.Currency,
		Type:             string(account.Type),
		Status:           string(account.Status),
		CashFlowCategory: string(account.CashFlowCategory),
		CreatedAt:        timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:        timeToPgTimestamptz(account.UpdatedAt),
	})
	if isUniqueViolation(err, accountNameCurrencyKey) {
		return domain.ErrDuplicateAccount
	}

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDs retrieves the accounts found among ids, ordered by id.
func (r *AccountRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Account, error) {
	rows, err := r.queries.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// List lists accounts matching filter in name order.
func (r *AccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	return r.ListTx(ctx, nil, filter)
}

// ListTx is List inside tx.
func (r *AccountRepository) ListTx(ctx context.Context, tx usecase.Transaction, filter domain.AccountFilter) ([]*domain.Account, error) {
	rows, err := queriesFor(r.pool, tx).ListAccounts(ctx, generated.ListAccountsParams{
		Type:     textOrNull(string(filter.Type)),
		Currency: textOrNull(filter.Currency),
		Status:   textOrNull(string(filter.Status)),
	})
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// UpdateStatus sets the status flag of an account.
func (r *AccountRepository) UpdateStatus(ctx context.Context, id string, status domain.AccountStatus, updatedAt time.Time) error {
	n, err := r.queries.UpdateAccountStatus(ctx, generated.UpdateAccountStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})

	return affected(n, err)
}

// UpdateCashFlowCategory sets the cash-flow tag of an account.
func (r *AccountRepository) UpdateCashFlowCategory(ctx context.Context, id string, category domain.CashFlowCategory, updatedAt time.Time) error {
	n, err := r.queries.UpdateAccountCashFlowCategory(ctx, generated.UpdateAccountCashFlowCategoryParams{
		ID:               id,
		CashFlowCategory: string(category),
		UpdatedAt:        timeToPgTimestamptz(updatedAt),
	})

	return affected(n, err)
}

func affected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func rowsToAccounts(rows []generated.Account) []*domain.Account {
	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:               row.ID,
		Name:             row.Name,
		Currency:         row.Currency,
		Type:             domain.AccountType(row.Type),
		Status:           domain.AccountStatus(row.Status),
		CashFlowCategory: domain.CashFlowCategory(row.CashFlowCategory),
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}
