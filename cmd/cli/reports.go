package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/iho/gojournal/internal/adapter/http/dto"
)

func (c *cli) reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Financial statements",
	}

	var currency, asOf, start, end string
	cmd.PersistentFlags().StringVar(&currency, "currency", "", "Report currency")
	_ = cmd.MarkPersistentFlagRequired("currency")

	pointQuery := func() url.Values {
		q := url.Values{"currency": {currency}}
		setIf(q, "as_of", asOf)
		return q
	}
	periodQuery := func() url.Values {
		return url.Values{"currency": {currency}, "start_date": {start}, "end_date": {end}}
	}

	trialCmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Trial balance as of a point in time",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r dto.TrialBalanceResponse
			if err := c.client().get(cmd.Context(), "/reports/trial-balance", pointQuery(), &r); err != nil {
				return err
			}
			if c.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), r)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Trial balance as of %s (%s)\n\n", r.AsOf.Format("2006-01-02 15:04:05"), r.Currency)
			t := newTable(w, "ACCOUNT", "TYPE", "DEBITS", "CREDITS", "BALANCE")
			for _, l := range r.Accounts {
				t.row(truncate(l.AccountName, 40), l.AccountType, l.TotalDebits, l.TotalCredits, l.Balance)
			}
			t.row("TOTAL", "", r.Summary.TotalDebits, r.Summary.TotalCredits, "")
			if err := t.flush(); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nbalanced: %v (difference %s)\n", r.Summary.Balanced, r.Summary.Difference)
			return nil
		},
	}

	sheetCmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Balance sheet as of a point in time",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r dto.BalanceSheetResponse
			if err := c.client().get(cmd.Context(), "/reports/balance-sheet", pointQuery(), &r); err != nil {
				return err
			}
			if c.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), r)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Balance sheet as of %s (%s)\n", r.AsOf.Format("2006-01-02 15:04:05"), r.Currency)
			for _, s := range []struct {
				name string
				sec  dto.ReportSectionResponse
			}{{"Assets", r.Assets}, {"Liabilities", r.Liabilities}, {"Equity", r.Equity}} {
				if err := printSection(w, s.name, s.sec); err != nil {
					return err
				}
			}
			fmt.Fprintf(w, "\nliabilities + equity: %s, balanced: %v\n", r.Totals.TotalLiabilitiesAndEquity, r.Totals.Balanced)
			return nil
		},
	}

	incomeCmd := &cobra.Command{
		Use:   "income-statement",
		Short: "Income statement over a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r dto.IncomeStatementResponse
			if err := c.client().get(cmd.Context(), "/reports/income-statement", periodQuery(), &r); err != nil {
				return err
			}
			if c.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), r)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Income statement %s to %s (%s)\n", r.Period.StartDate.Format("2006-01-02"), r.Period.EndDate.Format("2006-01-02"), r.Currency)
			if err := printSection(w, "Revenue", r.Revenue); err != nil {
				return err
			}
			if err := printSection(w, "Expenses", r.Expenses); err != nil {
				return err
			}
			fmt.Fprintf(w, "\nnet income: %s\n", r.NetIncome)
			return nil
		},
	}

	cashCmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Cash-flow statement over a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r dto.CashFlowResponse
			if err := c.client().get(cmd.Context(), "/reports/cash-flow", periodQuery(), &r); err != nil {
				return err
			}
			if c.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), r)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Cash flow %s to %s (%s)\n\n", r.Period.StartDate.Format("2006-01-02"), r.Period.EndDate.Format("2006-01-02"), r.Currency)
			t := newTable(w, "ACTIVITY", "TOTAL", "ENTRIES")
			t.row("operating", r.Operating.Total, fmt.Sprint(len(r.Operating.Details)))
			t.row("investing", r.Investing.Total, fmt.Sprint(len(r.Investing.Details)))
			t.row("financing", r.Financing.Total, fmt.Sprint(len(r.Financing.Details)))
			t.row("NET", r.NetCashFlow, "")
			return t.flush()
		},
	}

	for _, pc := range []*cobra.Command{trialCmd, sheetCmd} {
		pc.Flags().StringVar(&asOf, "as-of", "", "Point in time (RFC3339 or YYYY-MM-DD, default now)")
	}
	for _, pc := range []*cobra.Command{incomeCmd, cashCmd} {
		pc.Flags().StringVar(&start, "start", "", "Period start (RFC3339 or YYYY-MM-DD)")
		pc.Flags().StringVar(&end, "end", "", "Period end, inclusive (RFC3339 or YYYY-MM-DD)")
		_ = pc.MarkFlagRequired("start")
		_ = pc.MarkFlagRequired("end")
	}

	cmd.AddCommand(trialCmd, sheetCmd, incomeCmd, cashCmd)
	return cmd
}

func printSection(w io.Writer, name string, s dto.ReportSectionResponse) error {
	fmt.Fprintf(w, "\n%s\n", name)
	t := newTable(w, "  ACCOUNT", "BALANCE")
	for _, l := range s.Accounts {
		t.row("  "+truncate(l.AccountName, 40), l.Balance)
	}
	t.row("  TOTAL", s.Total)
	return t.flush()
}
