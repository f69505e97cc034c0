package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// RegisterAccountRequest represents a request to register an account.
type RegisterAccountRequest struct {
	Type             string `json:"type"`
	Name             string `json:"name"`
	Currency         string `json:"currency"`
	CashFlowCategory string `json:"cash_flow_category,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterAccountRequest) ToUseCaseInput() usecase.RegisterAccountInput {
	return usecase.RegisterAccountInput{
		Type:             r.Type,
		Name:             r.Name,
		Currency:         r.Currency,
		CashFlowCategory: r.CashFlowCategory,
	}
}

// SetAccountStatusRequest changes the status of an account.
type SetAccountStatusRequest struct {
	Status string `json:"status"`
}

// SetCashFlowCategoryRequest changes the cash-flow tag of an account.
type SetCashFlowCategoryRequest struct {
	Category string `json:"cash_flow_category"`
}

// EntryLineRequest is one line of a transaction. Amounts are decimal
// strings; an omitted side is zero. "debit" and "credit" are accepted as
// short aliases and are only read when the full name is absent or zero.
type EntryLineRequest struct {
	AccountID    string           `json:"account_id"`
	Currency     string           `json:"currency"`
	DebitAmount  decimal.Decimal  `json:"debit_amount"`
	CreditAmount decimal.Decimal  `json:"credit_amount"`
	Description  string           `json:"description,omitempty"`
	Debit        *decimal.Decimal `json:"debit,omitempty"`
	Credit       *decimal.Decimal `json:"credit,omitempty"`
}

// Amounts returns the debit and credit sides, resolving aliases.
func (l EntryLineRequest) Amounts() (debit, credit decimal.Decimal) {
	return pickAmount(l.DebitAmount, l.Debit), pickAmount(l.CreditAmount, l.Credit)
}

func pickAmount(full decimal.Decimal, alias *decimal.Decimal) decimal.Decimal {
	if full.IsZero() && alias != nil {
		return *alias
	}
	return full
}

// PostTransactionRequest represents a request to post a transaction.
type PostTransactionRequest struct {
	IdempotencyKey string             `json:"idempotency_key,omitempty"`
	Lines          []EntryLineRequest `json:"lines"`
}

// ToUseCaseInput converts to use case input. A non-empty headerKey takes
// precedence over the body field.
func (r *PostTransactionRequest) ToUseCaseInput(headerKey string) usecase.PostTransactionInput {
	key := r.IdempotencyKey
	if headerKey != "" {
		key = headerKey
	}

	lines := make([]domain.EntryLine, len(r.Lines))
	for i, l := range r.Lines {
		debit, credit := l.Amounts()
		lines[i] = domain.EntryLine{
			AccountID:   l.AccountID,
			Currency:    l.Currency,
			Debit:       debit,
			Credit:      credit,
			Description: l.Description,
		}
	}

	return usecase.PostTransactionInput{
		IdempotencyKey: key,
		Lines:          lines,
	}
}

// ReverseTransactionRequest optionally overrides the reversal description.
type ReverseTransactionRequest struct {
	Description string `json:"description,omitempty"`
}
