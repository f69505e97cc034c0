package dto

import (
	"time"

	"github.com/iho/gojournal/internal/domain"
)

// ReportLineResponse is one account line of a report. Account repeats the
// name on balance-sheet lines.
type ReportLineResponse struct {
	AccountID    string `json:"account_id"`
	Account      string `json:"account,omitempty"`
	AccountName  string `json:"account_name"`
	AccountType  string `json:"account_type"`
	TotalDebits  string `json:"total_debits"`
	TotalCredits string `json:"total_credits"`
	Balance      string `json:"balance"`
}

// ReportSectionResponse groups lines with their subtotal.
type ReportSectionResponse struct {
	Accounts []ReportLineResponse `json:"accounts"`
	Total    string               `json:"total"`
}

// TrialBalanceResponse is the trial balance report.
type TrialBalanceResponse struct {
	Report      string               `json:"report"`
	AsOf        time.Time            `json:"as_of_date"`
	Currency    string               `json:"currency"`
	GeneratedAt time.Time            `json:"generated_at"`
	Accounts    []ReportLineResponse `json:"accounts"`
	Summary     struct {
		TotalDebits  string `json:"total_debits"`
		TotalCredits string `json:"total_credits"`
		Difference   string `json:"difference"`
		Balanced     bool   `json:"balanced"`
	} `json:"summary"`
	Empty bool `json:"empty,omitempty"`
}

// TrialBalanceFromDomain converts a trial balance to response.
func TrialBalanceFromDomain(r *domain.TrialBalance, generatedAt time.Time) *TrialBalanceResponse {
	resp := &TrialBalanceResponse{
		Report:      "trial_balance",
		AsOf:        r.AsOf,
		Currency:    r.Currency,
		GeneratedAt: generatedAt,
		Accounts:    reportLines(r.Accounts, r.Currency),
		Empty:       r.Empty,
	}
	resp.Summary.TotalDebits = domain.FormatAmount(r.Summary.TotalDebits, r.Currency)
	resp.Summary.TotalCredits = domain.FormatAmount(r.Summary.TotalCredits, r.Currency)
	resp.Summary.Difference = domain.FormatAmount(r.Summary.Difference, r.Currency)
	resp.Summary.Balanced = r.Summary.Balanced
	return resp
}

// BalanceSheetResponse is the balance sheet report.
type BalanceSheetResponse struct {
	Report      string                `json:"report"`
	AsOf        time.Time             `json:"as_of_date"`
	Currency    string                `json:"currency"`
	GeneratedAt time.Time             `json:"generated_at"`
	Assets      ReportSectionResponse `json:"assets"`
	Liabilities ReportSectionResponse `json:"liabilities"`
	Equity      ReportSectionResponse `json:"equity"`
	Totals      struct {
		TotalAssets               string `json:"total_assets"`
		TotalLiabilities          string `json:"total_liabilities"`
		TotalEquity               string `json:"total_equity"`
		TotalLiabilitiesAndEquity string `json:"total_liabilities_and_equity"`
		Balanced                  bool   `json:"balanced"`
	} `json:"totals"`
	Empty bool `json:"empty,omitempty"`
}

// BalanceSheetFromDomain converts a balance sheet to response.
func BalanceSheetFromDomain(r *domain.BalanceSheet, generatedAt time.Time) *BalanceSheetResponse {
	c := r.Currency
	resp := &BalanceSheetResponse{
		Report:      "balance_sheet",
		AsOf:        r.AsOf,
		Currency:    c,
		GeneratedAt: generatedAt,
		Assets:      balanceSheetSection(r.Assets, c),
		Liabilities: balanceSheetSection(r.Liabilities, c),
		Equity:      balanceSheetSection(r.Equity, c),
		Empty:       r.Empty,
	}
	resp.Totals.TotalAssets = domain.FormatAmount(r.Totals.TotalAssets, c)
	resp.Totals.TotalLiabilities = domain.FormatAmount(r.Totals.TotalLiabilities, c)
	resp.Totals.TotalEquity = domain.FormatAmount(r.Totals.TotalEquity, c)
	resp.Totals.TotalLiabilitiesAndEquity = domain.FormatAmount(r.Totals.TotalLiabilitiesAndEquity, c)
	resp.Totals.Balanced = r.Totals.Balanced
	return resp
}

// PeriodResponse is an inclusive reporting window.
type PeriodResponse struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// IncomeStatementResponse is the income statement report.
type IncomeStatementResponse struct {
	Report      string                `json:"report"`
	Period      PeriodResponse        `json:"period"`
	Currency    string                `json:"currency"`
	GeneratedAt time.Time             `json:"generated_at"`
	Revenue     ReportSectionResponse `json:"revenue"`
	Expenses    ReportSectionResponse `json:"expenses"`
	NetIncome   string                `json:"net_income"`
	Empty       bool                  `json:"empty,omitempty"`
}

// IncomeStatementFromDomain converts an income statement to response.
func IncomeStatementFromDomain(r *domain.IncomeStatement, generatedAt time.Time) *IncomeStatementResponse {
	return &IncomeStatementResponse{
		Report:      "income_statement",
		Period:      PeriodResponse{StartDate: r.Period.Start, EndDate: r.Period.End},
		Currency:    r.Currency,
		GeneratedAt: generatedAt,
		Revenue:     reportSection(r.Revenue, r.Currency),
		Expenses:    reportSection(r.Expenses, r.Currency),
		NetIncome:   domain.FormatAmount(r.NetIncome, r.Currency),
		Empty:       r.Empty,
	}
}

// CashFlowDetailResponse is one entry contributing to an activity.
type CashFlowDetailResponse struct {
	Date           time.Time `json:"date"`
	TransactionID  string    `json:"transaction_id"`
	SequenceNumber int64     `json:"sequence_number"`
	AccountID      string    `json:"account_id"`
	AccountName    string    `json:"account_name"`
	Description    string    `json:"description,omitempty"`
	Amount         string    `json:"amount"`
}

// CashFlowActivityResponse is one bucket of the cash-flow statement.
type CashFlowActivityResponse struct {
	Details []CashFlowDetailResponse `json:"details"`
	Total   string                   `json:"total"`
}

// CashFlowResponse is the cash-flow statement report.
type CashFlowResponse struct {
	Report      string                   `json:"report"`
	Period      PeriodResponse           `json:"period"`
	Currency    string                   `json:"currency"`
	GeneratedAt time.Time                `json:"generated_at"`
	Operating   CashFlowActivityResponse `json:"operating_activities"`
	Investing   CashFlowActivityResponse `json:"investing_activities"`
	Financing   CashFlowActivityResponse `json:"financing_activities"`
	NetCashFlow string                   `json:"net_cash_flow"`
	Empty       bool                     `json:"empty,omitempty"`
}

// CashFlowFromDomain converts a cash-flow statement to response.
func CashFlowFromDomain(r *domain.CashFlowStatement, generatedAt time.Time) *CashFlowResponse {
	return &CashFlowResponse{
		Report:      "cash_flow",
		Period:      PeriodResponse{StartDate: r.Period.Start, EndDate: r.Period.End},
		Currency:    r.Currency,
		GeneratedAt: generatedAt,
		Operating:   cashFlowActivity(r.Operating, r.Currency),
		Investing:   cashFlowActivity(r.Investing, r.Currency),
		Financing:   cashFlowActivity(r.Financing, r.Currency),
		NetCashFlow: domain.FormatAmount(r.NetCashFlow, r.Currency),
		Empty:       r.Empty,
	}
}

// CurrencyTotalsResponse is the ledger-wide sum of one currency.
type CurrencyTotalsResponse struct {
	Currency     string `json:"currency"`
	TotalDebits  string `json:"total_debits"`
	TotalCredits string `json:"total_credits"`
	Consistent   bool   `json:"consistent"`
}

// ConsistencyResponse is the outcome of a ledger-wide check.
type ConsistencyResponse struct {
	Status     string                   `json:"status"`
	Consistent bool                     `json:"consistent"`
	Currencies []CurrencyTotalsResponse `json:"currencies"`
}

// ConsistencyFromDomain converts a consistency report to response.
func ConsistencyFromDomain(r *domain.ConsistencyReport) *ConsistencyResponse {
	resp := &ConsistencyResponse{
		Status:     "consistent",
		Consistent: r.Consistent,
		Currencies: make([]CurrencyTotalsResponse, len(r.Currencies)),
	}
	if !r.Consistent {
		resp.Status = "inconsistent"
	}
	for i, c := range r.Currencies {
		resp.Currencies[i] = CurrencyTotalsResponse{
			Currency:     c.Currency,
			TotalDebits:  domain.FormatAmount(c.TotalDebits, c.Currency),
			TotalCredits: domain.FormatAmount(c.TotalCredits, c.Currency),
			Consistent:   c.Consistent,
		}
	}
	return resp
}

// DiscrepancyResponse is one materialized balance that disagrees with the log.
type DiscrepancyResponse struct {
	AccountID        string `json:"account_id"`
	Currency         string `json:"currency"`
	StoredDebits     string `json:"stored_debits"`
	StoredCredits    string `json:"stored_credits"`
	ComputedDebits   string `json:"computed_debits"`
	ComputedCredits  string `json:"computed_credits"`
	StoredSequence   int64  `json:"stored_sequence"`
	ComputedSequence int64  `json:"computed_sequence"`
}

// ReconciliationResponse is the outcome of a reconciliation run.
type ReconciliationResponse struct {
	Reconciled      bool                  `json:"reconciled"`
	AccountsChecked int                   `json:"accounts_checked"`
	Discrepancies   []DiscrepancyResponse `json:"discrepancies"`
}

// ReconciliationFromDomain converts a reconciliation report to response.
func ReconciliationFromDomain(r *domain.ReconciliationReport) *ReconciliationResponse {
	resp := &ReconciliationResponse{
		Reconciled:      r.Reconciled(),
		AccountsChecked: r.AccountsChecked,
		Discrepancies:   make([]DiscrepancyResponse, len(r.Discrepancies)),
	}
	for i, d := range r.Discrepancies {
		resp.Discrepancies[i] = DiscrepancyResponse{
			AccountID:        d.AccountID,
			Currency:         d.Currency,
			StoredDebits:     domain.FormatAmount(d.StoredDebits, d.Currency),
			StoredCredits:    domain.FormatAmount(d.StoredCredits, d.Currency),
			ComputedDebits:   domain.FormatAmount(d.ComputedDebits, d.Currency),
			ComputedCredits:  domain.FormatAmount(d.ComputedCredits, d.Currency),
			StoredSequence:   d.StoredSequence,
			ComputedSequence: d.ComputedSequence,
		}
	}
	return resp
}

func reportLines(lines []domain.ReportLine, currency string) []ReportLineResponse {
	result := make([]ReportLineResponse, len(lines))
	for i, l := range lines {
		result[i] = ReportLineResponse{
			AccountID:    l.AccountID,
			AccountName:  l.AccountName,
			AccountType:  string(l.AccountType),
			TotalDebits:  domain.FormatAmount(l.TotalDebits, currency),
			TotalCredits: domain.FormatAmount(l.TotalCredits, currency),
			Balance:      domain.FormatAmount(l.Balance, currency),
		}
	}
	return result
}

func reportSection(s domain.ReportSection, currency string) ReportSectionResponse {
	return ReportSectionResponse{
		Accounts: reportLines(s.Accounts, currency),
		Total:    domain.FormatAmount(s.Total, currency),
	}
}

func balanceSheetSection(s domain.ReportSection, currency string) ReportSectionResponse {
	section := reportSection(s, currency)
	for i := range section.Accounts {
		section.Accounts[i].Account = section.Accounts[i].AccountName
	}
	return section
}

func cashFlowActivity(a domain.CashFlowActivity, currency string) CashFlowActivityResponse {
	details := make([]CashFlowDetailResponse, len(a.Details))
	for i, d := range a.Details {
		details[i] = CashFlowDetailResponse{
			Date:           d.Date,
			TransactionID:  d.TransactionID,
			SequenceNumber: d.SequenceNumber,
			AccountID:      d.AccountID,
			AccountName:    d.AccountName,
			Description:    d.Description,
			Amount:         domain.FormatAmount(d.Amount, currency),
		}
	}
	return CashFlowActivityResponse{
		Details: details,
		Total:   domain.FormatAmount(a.Total, currency),
	}
}
