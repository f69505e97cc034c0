package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/adapter/http/handler"
)

func (c *cli) postCmd() *cobra.Command {
	var (
		debits, credits []string
		currency        string
		description     string
		key             string
		file            string
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a balanced transaction",
		Long: `Post a balanced transaction. Lines are given as ACCOUNT_ID=AMOUNT with
--debit and --credit (debits are posted first), or as a JSON request body
with --file (use - for stdin).`,
		Example: `  gojournal-cli post --currency USD --debit CASH_ID=1000.00 --credit EQUITY_ID=1000.00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.PostTransactionRequest
			if file != "" {
				if err := readRequestFile(cmd, file, &req); err != nil {
					return err
				}
			} else {
				lines, err := parseLines(debits, credits, currency, description)
				if err != nil {
					return err
				}
				req.Lines = lines
			}

			headers := map[string]string{}
			if key != "" {
				headers[handler.IdempotencyKeyHeader] = key
			}

			var resp dto.TransactionResponse
			if err := c.client().send(cmd.Context(), http.MethodPost, "/transactions", &req, headers, &resp); err != nil {
				return err
			}
			return c.printTransaction(cmd, &resp)
		},
	}

	cmd.Flags().StringArrayVar(&debits, "debit", nil, "Debit line ACCOUNT_ID=AMOUNT (repeatable)")
	cmd.Flags().StringArrayVar(&credits, "credit", nil, "Credit line ACCOUNT_ID=AMOUNT (repeatable)")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency of every line")
	cmd.Flags().StringVar(&description, "description", "", "Description applied to every line")
	cmd.Flags().StringVar(&key, "idempotency-key", "", "Idempotency key")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON request body (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("file", "debit")
	cmd.MarkFlagsMutuallyExclusive("file", "credit")

	return cmd
}

func (c *cli) reverseCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "reverse TRANSACTION_ID",
		Short: "Reverse a posted transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := dto.ReverseTransactionRequest{Description: description}
			var resp dto.TransactionResponse
			path := "/transactions/" + url.PathEscape(args[0]) + "/reverse"
			if err := c.client().send(cmd.Context(), http.MethodPost, path, body, nil, &resp); err != nil {
				return err
			}
			return c.printTransaction(cmd, &resp)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Description of the reversal lines")

	return cmd
}

func (c *cli) transactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transaction TRANSACTION_ID",
		Short: "Show the lines of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.TransactionResponse
			if err := c.client().get(cmd.Context(), "/transactions/"+url.PathEscape(args[0]), nil, &resp); err != nil {
				return err
			}
			return c.printTransaction(cmd, &resp)
		},
	}
}

func (c *cli) entriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Journal entry queries",
	}

	var (
		filters        = map[string]*string{}
		page, perPage  int
		filterFlagKeys = []string{"account_id", "account_type", "account_name", "currency", "transaction_id", "start_date", "end_date"}
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			for _, k := range filterFlagKeys {
				setIf(q, k, *filters[k])
			}
			if page > 0 {
				q.Set("page", strconv.Itoa(page))
			}
			if perPage > 0 {
				q.Set("per_page", strconv.Itoa(perPage))
			}

			var resp dto.ListEntriesResponse
			if err := c.client().get(cmd.Context(), "/entries", q, &resp); err != nil {
				return err
			}
			if c.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			if err := printEntries(cmd.OutOrStdout(), resp.Entries); err != nil {
				return err
			}
			p := resp.Pagination
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %d (%d entries)\n", p.Page, p.Pages, p.Total)
			return nil
		},
	}

	for _, k := range filterFlagKeys {
		v := new(string)
		filters[k] = v
		listCmd.Flags().StringVar(v, strings.ReplaceAll(k, "_", "-"), "", "Filter by "+strings.ReplaceAll(k, "_", " "))
	}
	listCmd.Flags().IntVar(&page, "page", 0, "Page number")
	listCmd.Flags().IntVar(&perPage, "per-page", 0, "Entries per page")

	cmd.AddCommand(listCmd)
	return cmd
}

func (c *cli) printTransaction(cmd *cobra.Command, tx *dto.TransactionResponse) error {
	if c.output == outputJSON {
		return printJSON(cmd.OutOrStdout(), tx)
	}

	header := "transaction " + tx.TransactionID
	if tx.Replayed {
		header += " (replayed)"
	}
	fmt.Fprintln(cmd.OutOrStdout(), header)
	return printEntries(cmd.OutOrStdout(), tx.Entries)
}

func printEntries(w io.Writer, entries []*dto.EntryResponse) error {
	t := newTable(w, "SEQ", "TRANSACTION", "LINE", "ACCOUNT", "DEBIT", "CREDIT", "CURRENCY", "DESCRIPTION")
	for _, e := range entries {
		account := e.AccountID
		if e.AccountName != "" {
			account = e.AccountName
		}
		t.row(
			strconv.FormatInt(e.SequenceNumber, 10),
			e.TransactionID,
			strconv.Itoa(e.LineNumber),
			truncate(account, 30),
			e.Debit,
			e.Credit,
			e.Currency,
			truncate(e.Description, 40),
		)
	}
	return t.flush()
}

// parseLines turns ACCOUNT_ID=AMOUNT pairs into request lines.
func parseLines(debits, credits []string, currency, description string) ([]dto.EntryLineRequest, error) {
	if currency == "" {
		return nil, errors.New("--currency is required with --debit/--credit")
	}

	lines := make([]dto.EntryLineRequest, 0, len(debits)+len(credits))
	for _, arg := range debits {
		id, amount, err := parseLine(arg)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.EntryLineRequest{AccountID: id, Currency: currency, DebitAmount: amount, Description: description})
	}
	for _, arg := range credits {
		id, amount, err := parseLine(arg)
		if err != nil {
			return nil, err
		}
		lines = append(lines, dto.EntryLineRequest{AccountID: id, Currency: currency, CreditAmount: amount, Description: description})
	}
	return lines, nil
}

func parseLine(arg string) (string, decimal.Decimal, error) {
	id, raw, ok := strings.Cut(arg, "=")
	if !ok || id == "" || raw == "" {
		return "", decimal.Decimal{}, fmt.Errorf("invalid line %q: want ACCOUNT_ID=AMOUNT", arg)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return "", decimal.Decimal{}, fmt.Errorf("invalid amount in %q: %w", arg, err)
	}
	return id, amount, nil
}

func readRequestFile(cmd *cobra.Command, path string, v any) error {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
