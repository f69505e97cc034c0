package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

func TestEntryFromDomain_FormatsAmountsWithCurrencyScale(t *testing.T) {
	tests := []struct {
		currency string
		debit    string
		want     string
	}{
		{"USD", "1000", "1000.00"},
		{"JPY", "1500", "1500"},
		{"KWD", "1.5", "1.500"},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			resp := EntryFromDomain(&domain.JournalEntry{
				Currency: tt.currency,
				Debit:    decimal.RequireFromString(tt.debit),
				Credit:   decimal.Zero,
			})
			if resp.Debit != tt.want {
				t.Fatalf("expected debit %s, got %s", tt.want, resp.Debit)
			}
			if resp.Credit != decimal.Zero.StringFixed(domain.CurrencyScale(tt.currency)) {
				t.Fatalf("unexpected credit %s", resp.Credit)
			}
		})
	}
}

func TestListEntriesFromResult(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	result := &usecase.ListEntriesResult{
		Entries: []*domain.EntryView{{
			JournalEntry: domain.JournalEntry{
				ID:             "e1",
				TransactionID:  "tx1",
				AccountID:      "cash",
				Currency:       "USD",
				Debit:          decimal.RequireFromString("5"),
				Credit:         decimal.Zero,
				SequenceNumber: 7,
			},
			AccountName: "Cash",
			AccountType: domain.AccountTypeAsset,
		}},
		Pagination: usecase.Pagination{Page: 2, PerPage: 1, Total: 3, Pages: 3, HasNext: true, HasPrev: true},
		Filters:    domain.EntryFilter{Currency: "USD", StartDate: &start},
	}

	resp := ListEntriesFromResult(result)

	if len(resp.Entries) != 1 || resp.Entries[0].AccountName != "Cash" || resp.Entries[0].AccountType != "asset" {
		t.Fatalf("unexpected entries %+v", resp.Entries)
	}
	if resp.Pagination != (PaginationResponse{Page: 2, PerPage: 1, Total: 3, Pages: 3, HasNext: true, HasPrev: true}) {
		t.Fatalf("unexpected pagination %+v", resp.Pagination)
	}
	if resp.Filters.Currency != "USD" || resp.Filters.StartDate == nil {
		t.Fatalf("unexpected filters %+v", resp.Filters)
	}
}

func TestTrialBalanceFromDomain_SerializesDecimalStrings(t *testing.T) {
	tb := &domain.TrialBalance{
		Currency: "USD",
		Accounts: []domain.ReportLine{{
			AccountID:    "cash",
			AccountName:  "Cash",
			AccountType:  domain.AccountTypeAsset,
			TotalDebits:  decimal.RequireFromString("1000"),
			TotalCredits: decimal.Zero,
			Balance:      decimal.RequireFromString("1000"),
		}},
		Summary: domain.TrialBalanceSummary{
			TotalDebits:  decimal.RequireFromString("1000"),
			TotalCredits: decimal.RequireFromString("1000"),
			Difference:   decimal.Zero,
			Balanced:     true,
		},
	}

	raw, err := json.Marshal(TrialBalanceFromDomain(tb, time.Now()))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	summary := decoded["summary"].(map[string]any)
	if summary["total_debits"] != "1000.00" || summary["difference"] != "0.00" || summary["balanced"] != true {
		t.Fatalf("unexpected summary %v", summary)
	}
	if decoded["report"] != "trial_balance" {
		t.Fatalf("unexpected report name %v", decoded["report"])
	}
}

func TestConsistencyFromDomain_Status(t *testing.T) {
	resp := ConsistencyFromDomain(&domain.ConsistencyReport{
		Consistent: false,
		Currencies: []domain.CurrencyTotals{{
			Currency:     "EUR",
			TotalDebits:  decimal.RequireFromString("10"),
			TotalCredits: decimal.RequireFromString("9"),
		}},
	})

	if resp.Status != "inconsistent" || resp.Consistent {
		t.Fatalf("expected inconsistent status, got %+v", resp)
	}
	if resp.Currencies[0].TotalDebits != "10.00" {
		t.Fatalf("unexpected totals %+v", resp.Currencies[0])
	}
}

func TestReconciliationFromDomain(t *testing.T) {
	resp := ReconciliationFromDomain(&domain.ReconciliationReport{AccountsChecked: 4})

	if !resp.Reconciled || resp.AccountsChecked != 4 || len(resp.Discrepancies) != 0 {
		t.Fatalf("unexpected reconciliation %+v", resp)
	}
}
