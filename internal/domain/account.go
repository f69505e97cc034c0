package domain

import (
	"strings"
	"time"
)

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// ParseAccountType parses a case-insensitive account type.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidAccountType
	}
	return t, nil
}

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNormal reports whether balances of this type increase with debits.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Order returns the position of the type in statement order.
func (t AccountType) Order() int {
	for i, at := range AccountTypes {
		if at == t {
			return i
		}
	}
	return len(AccountTypes)
}

// AccountStatus is the soft status flag of an account.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "active"
	AccountStatusInactive AccountStatus = "inactive"
)

// ParseAccountStatus parses a case-insensitive account status.
func ParseAccountStatus(s string) (AccountStatus, error) {
	st := AccountStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case AccountStatusActive, AccountStatusInactive:
		return st, nil
	}
	return "", ErrInvalidAccountStatus
}

// CashFlowCategory tags an account for the cash-flow statement.
// The empty category means the account does not take part in it.
type CashFlowCategory string

const (
	CashFlowNone      CashFlowCategory = ""
	CashFlowOperating CashFlowCategory = "operating"
	CashFlowInvesting CashFlowCategory = "investing"
	CashFlowFinancing CashFlowCategory = "financing"
)

// ParseCashFlowCategory parses a case-insensitive cash-flow category.
// "none" and the empty string both clear the tag.
func ParseCashFlowCategory(s string) (CashFlowCategory, error) {
	c := CashFlowCategory(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case "none":
		return CashFlowNone, nil
	case CashFlowNone, CashFlowOperating, CashFlowInvesting, CashFlowFinancing:
		return c, nil
	}
	return "", ErrInvalidCashFlowCategory
}

// Account represents an entry in the chart of accounts.
// Only Status and CashFlowCategory change after creation.
type Account struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ID               string
	Name             string
	Currency         string
	Type             AccountType
	Status           AccountStatus
	CashFlowCategory CashFlowCategory
}

// IsActive reports whether the account accepts new postings.
func (a *Account) IsActive() bool {
	return a.Status != AccountStatusInactive
}

// AccountFilter narrows an account listing. Zero fields match everything.
type AccountFilter struct {
	Type     AccountType
	Currency string
	Status   AccountStatus
}

// Matches reports whether the account satisfies the filter.
func (f AccountFilter) Matches(a *Account) bool {
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.Currency != "" && a.Currency != f.Currency {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}
