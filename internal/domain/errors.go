package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound         = errors.New("account not found")
	ErrDuplicateAccount        = errors.New("account with this name and currency already exists")
	ErrInvalidAccountType      = errors.New("invalid account type")
	ErrInvalidAccountStatus    = errors.New("invalid account status")
	ErrInvalidCashFlowCategory = errors.New("invalid cash flow category")
	ErrAccountInactive         = errors.New("account is inactive")

	// Posting errors
	ErrInvalidTransaction    = errors.New("transaction must have at least two lines")
	ErrUnbalancedTransaction = errors.New("transaction debits do not equal credits")
	ErrInvalidAmount         = errors.New("each line needs exactly one positive debit or credit amount")
	ErrCurrencyMismatch      = errors.New("all lines and accounts must share one currency")
	ErrIdempotencyConflict   = errors.New("idempotency key reused with a different payload")
	ErrTransactionNotFound   = errors.New("transaction not found")

	// ErrDuplicateIdempotencyKey is returned by storage when a concurrent
	// commit claimed the same key first.
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already recorded")

	// ErrStorageFailure marks a failed commit; the caller must retry the whole call.
	ErrStorageFailure = errors.New("storage failure")

	// Query errors
	ErrInvalidDateRange = errors.New("end date is before start date")
)
