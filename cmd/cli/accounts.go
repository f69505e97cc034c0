package main

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/iho/gojournal/internal/adapter/http/dto"
)

func (c *cli) accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Chart of accounts operations",
	}

	var create dto.RegisterAccountRequest
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var acc dto.AccountResponse
			if err := c.client().send(cmd.Context(), http.MethodPost, "/accounts", &create, nil, &acc); err != nil {
				return err
			}
			return c.printAccounts(cmd, []*dto.AccountResponse{&acc})
		},
	}
	createCmd.Flags().StringVar(&create.Type, "type", "", "Account type: asset, liability, equity, revenue, expense")
	createCmd.Flags().StringVar(&create.Name, "name", "", "Account name")
	createCmd.Flags().StringVar(&create.Currency, "currency", "", "ISO 4217 currency code")
	createCmd.Flags().StringVar(&create.CashFlowCategory, "cash-flow", "", "Cash-flow category: operating, investing, financing")
	_ = createCmd.MarkFlagRequired("type")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("currency")

	var filter struct{ typ, currency, status string }
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			setIf(q, "type", filter.typ)
			setIf(q, "currency", filter.currency)
			setIf(q, "status", filter.status)

			var resp dto.ListAccountsResponse
			if err := c.client().get(cmd.Context(), "/accounts", q, &resp); err != nil {
				return err
			}
			if c.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return c.printAccounts(cmd, resp.Accounts)
		},
	}
	listCmd.Flags().StringVar(&filter.typ, "type", "", "Filter by account type")
	listCmd.Flags().StringVar(&filter.currency, "currency", "", "Filter by currency")
	listCmd.Flags().StringVar(&filter.status, "status", "", "Filter by status")

	getCmd := &cobra.Command{
		Use:   "get ACCOUNT_ID",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var acc dto.AccountResponse
			if err := c.client().get(cmd.Context(), "/accounts/"+url.PathEscape(args[0]), nil, &acc); err != nil {
				return err
			}
			return c.printAccounts(cmd, []*dto.AccountResponse{&acc})
		},
	}

	var asOf string
	balanceCmd := &cobra.Command{
		Use:   "balance ACCOUNT_ID",
		Short: "Show the balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			setIf(q, "as_of", asOf)

			var bal dto.BalanceResponse
			if err := c.client().get(cmd.Context(), "/accounts/"+url.PathEscape(args[0])+"/balance", q, &bal); err != nil {
				return err
			}
			if c.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), bal)
			}
			t := newTable(cmd.OutOrStdout(), "ACCOUNT", "TYPE", "DEBITS", "CREDITS", "BALANCE", "CURRENCY")
			t.row(bal.AccountID, bal.AccountType, bal.TotalDebits, bal.TotalCredits, bal.Balance, bal.Currency)
			return t.flush()
		},
	}
	balanceCmd.Flags().StringVar(&asOf, "as-of", "", "Point in time (RFC3339 or YYYY-MM-DD)")

	var status string
	statusCmd := &cobra.Command{
		Use:   "set-status ACCOUNT_ID",
		Short: "Activate or deactivate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var acc dto.AccountResponse
			body := dto.SetAccountStatusRequest{Status: status}
			if err := c.client().send(cmd.Context(), http.MethodPatch, "/accounts/"+url.PathEscape(args[0])+"/status", body, nil, &acc); err != nil {
				return err
			}
			return c.printAccounts(cmd, []*dto.AccountResponse{&acc})
		},
	}
	statusCmd.Flags().StringVar(&status, "status", "", "active or inactive")
	_ = statusCmd.MarkFlagRequired("status")

	var category string
	cashFlowCmd := &cobra.Command{
		Use:   "set-cash-flow ACCOUNT_ID",
		Short: "Tag an account for the cash-flow statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var acc dto.AccountResponse
			body := dto.SetCashFlowCategoryRequest{Category: category}
			if err := c.client().send(cmd.Context(), http.MethodPut, "/accounts/"+url.PathEscape(args[0])+"/cash-flow-category", body, nil, &acc); err != nil {
				return err
			}
			return c.printAccounts(cmd, []*dto.AccountResponse{&acc})
		},
	}
	cashFlowCmd.Flags().StringVar(&category, "category", "", "operating, investing, financing or none")
	_ = cashFlowCmd.MarkFlagRequired("category")

	cmd.AddCommand(createCmd, listCmd, getCmd, balanceCmd, statusCmd, cashFlowCmd)
	return cmd
}

func (c *cli) printAccounts(cmd *cobra.Command, accounts []*dto.AccountResponse) error {
	if c.output == outputJSON {
		if len(accounts) == 1 {
			return printJSON(cmd.OutOrStdout(), accounts[0])
		}
		return printJSON(cmd.OutOrStdout(), accounts)
	}

	t := newTable(cmd.OutOrStdout(), "ID", "NAME", "TYPE", "CURRENCY", "STATUS", "CASH FLOW")
	for _, a := range accounts {
		t.row(a.ID, truncate(a.Name, 40), a.Type, a.Currency, a.Status, a.CashFlowCategory)
	}
	return t.flush()
}

func setIf(q url.Values, key, val string) {
	if val != "" {
		q.Set(key, val)
	}
}
