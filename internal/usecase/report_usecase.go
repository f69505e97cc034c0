package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
)

// Report names used for metrics.
const (
	ReportTrialBalance    = "trial_balance"
	ReportBalanceSheet    = "balance_sheet"
	ReportIncomeStatement = "income_statement"
	ReportCashFlow        = "cash_flow"
)

// ReportUseCase builds financial statements from the journal. Every report
// is computed inside one read snapshot and depends only on the journal and
// the requested time boundary.
type ReportUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	opts        options
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	opts ...Option,
) *ReportUseCase {
	return &ReportUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		opts:        buildOptions(opts),
	}
}

// TrialBalance lists every account with activity up to asOf and checks that
// total debits equal total credits.
func (uc *ReportUseCase) TrialBalance(ctx context.Context, asOf time.Time, currency string) (*domain.TrialBalance, error) {
	currency, err := reportCurrency(currency)
	if err != nil {
		return nil, err
	}

	report := &domain.TrialBalance{AsOf: asOf, Currency: currency}
	if asOf.IsZero() {
		report.Empty = true
		report.Summary = domain.TrialBalanceSummary{
			TotalDebits:  decimal.Zero,
			TotalCredits: decimal.Zero,
			Difference:   decimal.Zero,
		}
		return report, nil
	}

	defer uc.observe(ReportTrialBalance, time.Now())

	var lines []domain.ReportLine
	err = readSnapshot(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		lines, err = uc.accountLines(ctx, tx, currency, nil, &asOf)
		return err
	})
	if err != nil {
		return nil, err
	}

	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.TotalDebits)
		credits = credits.Add(l.TotalCredits)
	}

	report.Accounts = lines
	report.Summary = domain.TrialBalanceSummary{
		TotalDebits:  debits,
		TotalCredits: credits,
		Difference:   debits.Sub(credits),
		Balanced:     debits.Equal(credits),
	}

	return report, nil
}

// BalanceSheet groups asset, liability and equity balances as of asOf.
// Revenue less expenses not yet closed appears as a Current Earnings line
// in equity.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, asOf time.Time, currency string) (*domain.BalanceSheet, error) {
	currency, err := reportCurrency(currency)
	if err != nil {
		return nil, err
	}

	report := &domain.BalanceSheet{
		AsOf:        asOf,
		Currency:    currency,
		Assets:      emptySection(),
		Liabilities: emptySection(),
		Equity:      emptySection(),
		Totals: domain.BalanceSheetTotals{
			TotalAssets:               decimal.Zero,
			TotalLiabilities:          decimal.Zero,
			TotalEquity:               decimal.Zero,
			TotalLiabilitiesAndEquity: decimal.Zero,
		},
	}
	if asOf.IsZero() {
		report.Empty = true
		return report, nil
	}

	defer uc.observe(ReportBalanceSheet, time.Now())

	var lines []domain.ReportLine
	err = readSnapshot(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		lines, err = uc.accountLines(ctx, tx, currency, nil, &asOf)
		return err
	})
	if err != nil {
		return nil, err
	}

	earnings := decimal.Zero
	for _, l := range lines {
		switch l.AccountType {
		case domain.AccountTypeAsset:
			addLine(&report.Assets, l)
		case domain.AccountTypeLiability:
			addLine(&report.Liabilities, l)
		case domain.AccountTypeEquity:
			addLine(&report.Equity, l)
		case domain.AccountTypeRevenue:
			earnings = earnings.Add(l.Balance)
		case domain.AccountTypeExpense:
			earnings = earnings.Sub(l.Balance)
		}
	}

	if !earnings.IsZero() {
		addLine(&report.Equity, domain.ReportLine{
			AccountName: domain.CurrentEarningsName,
			AccountType: domain.AccountTypeEquity,
			Balance:     earnings,
		})
	}

	t := &report.Totals
	t.TotalAssets = report.Assets.Total
	t.TotalLiabilities = report.Liabilities.Total
	t.TotalEquity = report.Equity.Total
	t.TotalLiabilitiesAndEquity = t.TotalLiabilities.Add(t.TotalEquity)
	t.Balanced = t.TotalAssets.Equal(t.TotalLiabilitiesAndEquity)

	return report, nil
}

// IncomeStatement computes revenue and expense flows over entries created
// inside the inclusive period.
func (uc *ReportUseCase) IncomeStatement(ctx context.Context, period domain.Period, currency string) (*domain.IncomeStatement, error) {
	currency, err := reportCurrency(currency)
	if err != nil {
		return nil, err
	}

	report := &domain.IncomeStatement{
		Period:    period,
		Currency:  currency,
		Revenue:   emptySection(),
		Expenses:  emptySection(),
		NetIncome: decimal.Zero,
	}
	if !period.Valid() {
		report.Empty = true
		return report, nil
	}

	defer uc.observe(ReportIncomeStatement, time.Now())

	var lines []domain.ReportLine
	err = readSnapshot(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		lines, err = uc.accountLines(ctx, tx, currency, &period.Start, &period.End)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		switch l.AccountType {
		case domain.AccountTypeRevenue:
			addLine(&report.Revenue, l)
		case domain.AccountTypeExpense:
			addLine(&report.Expenses, l)
		}
	}

	report.NetIncome = report.Revenue.Total.Sub(report.Expenses.Total)

	return report, nil
}

// CashFlowStatement buckets period entries on tagged accounts into operating,
// investing and financing activities. Each entry contributes its credit less
// its debit: the cash effect seen from the counterparty account.
func (uc *ReportUseCase) CashFlowStatement(ctx context.Context, period domain.Period, currency string) (*domain.CashFlowStatement, error) {
	currency, err := reportCurrency(currency)
	if err != nil {
		return nil, err
	}

	report := &domain.CashFlowStatement{
		Period:      period,
		Currency:    currency,
		Operating:   domain.CashFlowActivity{Total: decimal.Zero},
		Investing:   domain.CashFlowActivity{Total: decimal.Zero},
		Financing:   domain.CashFlowActivity{Total: decimal.Zero},
		NetCashFlow: decimal.Zero,
	}
	if !period.Valid() {
		report.Empty = true
		return report, nil
	}

	defer uc.observe(ReportCashFlow, time.Now())

	var entries []*domain.EntryView
	err = readSnapshot(ctx, uc.txManager, func(tx Transaction) error {
		var err error
		entries, err = uc.entryRepo.ListCashFlow(ctx, tx, currency, period)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		activity := report.Activity(e.CashFlowCategory)
		if activity == nil {
			continue
		}
		amount := e.Credit.Sub(e.Debit)
		activity.Details = append(activity.Details, domain.CashFlowDetail{
			Date:           e.CreatedAt,
			TransactionID:  e.TransactionID,
			AccountID:      e.AccountID,
			AccountName:    e.AccountName,
			Description:    e.Description,
			Amount:         amount,
			SequenceNumber: e.SequenceNumber,
		})
		activity.Total = activity.Total.Add(amount)
	}

	report.NetCashFlow = report.Operating.Total.Add(report.Investing.Total).Add(report.Financing.Total)

	return report, nil
}

// accountLines joins per-account totals inside the bounds with the chart of
// accounts. Accounts without activity are left out.
func (uc *ReportUseCase) accountLines(ctx context.Context, tx Transaction, currency string, from, to *time.Time) ([]domain.ReportLine, error) {
	accounts, err := uc.accountRepo.ListTx(ctx, tx, domain.AccountFilter{Currency: currency})
	if err != nil {
		return nil, err
	}

	totals, err := uc.entryRepo.SumByAccounts(ctx, tx, currency, from, to)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	lines := make([]domain.ReportLine, 0, len(totals))
	for _, t := range totals {
		a, ok := byID[t.AccountID]
		if !ok {
			continue
		}
		lines = append(lines, domain.ReportLine{
			AccountID:    a.ID,
			AccountName:  a.Name,
			AccountType:  a.Type,
			TotalDebits:  t.TotalDebits,
			TotalCredits: t.TotalCredits,
			Balance:      domain.NormalBalance(a.Type, t.TotalDebits, t.TotalCredits),
		})
	}

	sortLines(lines)

	return lines, nil
}

func (uc *ReportUseCase) observe(report string, start time.Time) {
	uc.opts.metrics.ReportGenerated(report, time.Since(start))
}

func reportCurrency(currency string) (string, error) {
	if err := domain.ValidateCurrency(currency); err != nil {
		return "", err
	}
	return domain.NormalizeCurrency(currency), nil
}

func emptySection() domain.ReportSection {
	return domain.ReportSection{Total: decimal.Zero}
}

func addLine(s *domain.ReportSection, l domain.ReportLine) {
	s.Accounts = append(s.Accounts, l)
	s.Total = s.Total.Add(l.Balance)
}

// sortLines orders report lines by account type, then name, then id.
func sortLines(lines []domain.ReportLine) {
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.AccountType != b.AccountType {
			return a.AccountType.Order() < b.AccountType.Order()
		}
		if a.AccountName != b.AccountName {
			return a.AccountName < b.AccountName
		}
		return a.AccountID < b.AccountID
	})
}
