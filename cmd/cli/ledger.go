package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/usecase"
)

var errUnreconciled = errors.New("materialized balances disagree with the journal")

func (c *cli) ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r dto.ConsistencyResponse
			if err := c.getAllowConflict(cmd, "/ledger/consistency", &r); err != nil {
				return err
			}
			if c.output == outputJSON {
				if err := printJSON(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			} else {
				w := cmd.OutOrStdout()
				t := newTable(w, "CURRENCY", "DEBITS", "CREDITS", "CONSISTENT")
				for _, cur := range r.Currencies {
					t.row(cur.Currency, cur.TotalDebits, cur.TotalCredits, fmt.Sprint(cur.Consistent))
				}
				if err := t.flush(); err != nil {
					return err
				}
				fmt.Fprintf(w, "\nStatus: %s\n", r.Status)
			}
			if !r.Consistent {
				return usecase.ErrInconsistentLedger
			}
			return nil
		},
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare materialized balances with the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			var r dto.ReconciliationResponse
			if err := c.getAllowConflict(cmd, "/ledger/reconciliation", &r); err != nil {
				return err
			}
			if c.output == outputJSON {
				if err := printJSON(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			} else {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "accounts checked: %d\n", r.AccountsChecked)
				if len(r.Discrepancies) > 0 {
					t := newTable(w, "ACCOUNT", "STORED DR", "STORED CR", "JOURNAL DR", "JOURNAL CR", "STORED SEQ", "JOURNAL SEQ")
					for _, d := range r.Discrepancies {
						t.row(d.AccountID, d.StoredDebits, d.StoredCredits, d.ComputedDebits, d.ComputedCredits,
							fmt.Sprint(d.StoredSequence), fmt.Sprint(d.ComputedSequence))
					}
					if err := t.flush(); err != nil {
						return err
					}
				}
			}
			if !r.Reconciled {
				return errUnreconciled
			}
			return nil
		},
	}

	cmd.AddCommand(consistencyCmd, reconcileCmd)
	return cmd
}

// getAllowConflict decodes a 409 body into out: the ledger endpoints answer
// 409 with a full report when a check fails.
func (c *cli) getAllowConflict(cmd *cobra.Command, path string, out any) error {
	err := c.client().get(cmd.Context(), path, nil, out)

	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		if jsonErr := json.Unmarshal(apiErr.Body, out); jsonErr != nil {
			return fmt.Errorf("failed to parse response: %w", jsonErr)
		}
		return nil
	}
	return err
}
