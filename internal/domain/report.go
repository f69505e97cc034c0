package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportLine is the balance of one account inside a report section.
type ReportLine struct {
	AccountID    string
	AccountName  string
	AccountType  AccountType
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Balance      decimal.Decimal
}

// ReportSection groups report lines with their subtotal.
type ReportSection struct {
	Accounts []ReportLine
	Total    decimal.Decimal
}

// TrialBalanceSummary totals a trial balance.
type TrialBalanceSummary struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Difference   decimal.Decimal
	Balanced     bool
}

// TrialBalance lists every account with activity up to AsOf.
type TrialBalance struct {
	AsOf     time.Time
	Currency string
	Accounts []ReportLine
	Summary  TrialBalanceSummary
	Empty    bool
}

// BalanceSheetTotals totals a balance sheet.
type BalanceSheetTotals struct {
	TotalAssets               decimal.Decimal
	TotalLiabilities          decimal.Decimal
	TotalEquity               decimal.Decimal
	TotalLiabilitiesAndEquity decimal.Decimal
	Balanced                  bool
}

// CurrentEarningsName labels the synthetic equity line carrying
// revenue minus expenses not yet closed into equity.
const CurrentEarningsName = "Current Earnings"

// BalanceSheet is a point-in-time statement of financial position.
type BalanceSheet struct {
	AsOf        time.Time
	Currency    string
	Assets      ReportSection
	Liabilities ReportSection
	Equity      ReportSection
	Totals      BalanceSheetTotals
	Empty       bool
}

// Period is an inclusive reporting window.
type Period struct {
	Start time.Time
	End   time.Time
}

// Valid reports whether the window can be evaluated.
func (p Period) Valid() bool {
	return !p.Start.IsZero() && !p.End.IsZero() && !p.End.Before(p.Start)
}

// Contains reports whether t falls inside the window, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// IncomeStatement is the revenue and expense flow over a period.
type IncomeStatement struct {
	Period    Period
	Currency  string
	Revenue   ReportSection
	Expenses  ReportSection
	NetIncome decimal.Decimal
	Empty     bool
}

// CashFlowDetail is one entry contributing to a cash-flow activity.
type CashFlowDetail struct {
	Date           time.Time
	TransactionID  string
	AccountID      string
	AccountName    string
	Description    string
	Amount         decimal.Decimal
	SequenceNumber int64
}

// CashFlowActivity is one bucket of the cash-flow statement.
type CashFlowActivity struct {
	Details []CashFlowDetail
	Total   decimal.Decimal
}

// CashFlowStatement buckets period entries by their accounts' categories.
type CashFlowStatement struct {
	Period      Period
	Currency    string
	Operating   CashFlowActivity
	Investing   CashFlowActivity
	Financing   CashFlowActivity
	NetCashFlow decimal.Decimal
	Empty       bool
}

// Activity returns the bucket for a category, or nil for untagged accounts.
func (s *CashFlowStatement) Activity(c CashFlowCategory) *CashFlowActivity {
	switch c {
	case CashFlowOperating:
		return &s.Operating
	case CashFlowInvesting:
		return &s.Investing
	case CashFlowFinancing:
		return &s.Financing
	}
	return nil
}

// Discrepancy describes a materialized balance that disagrees with the log.
type Discrepancy struct {
	AccountID        string
	Currency         string
	StoredDebits     decimal.Decimal
	StoredCredits    decimal.Decimal
	ComputedDebits   decimal.Decimal
	ComputedCredits  decimal.Decimal
	StoredSequence   int64
	ComputedSequence int64
}

// ReconciliationReport is the outcome of comparing balances with the log.
type ReconciliationReport struct {
	AccountsChecked int
	Discrepancies   []Discrepancy
}

// Reconciled reports whether no discrepancy was found.
func (r ReconciliationReport) Reconciled() bool {
	return len(r.Discrepancies) == 0
}

// CurrencyTotals is the ledger-wide debit and credit sum of one currency.
type CurrencyTotals struct {
	Currency     string
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Consistent   bool
}

// ConsistencyReport is the outcome of a ledger-wide double-entry check.
type ConsistencyReport struct {
	Currencies []CurrencyTotals
	Consistent bool
}
