package domain

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewTransactionEvent(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	entries := []*JournalEntry{
		{TransactionID: "tx-1", AccountID: "cash", Currency: "JPY", Debit: decimal.NewFromInt(1500), CreatedAt: at},
		{TransactionID: "tx-1", AccountID: "bank", Currency: "JPY", Credit: decimal.NewFromInt(1000), CreatedAt: at},
		{TransactionID: "tx-1", AccountID: "bank", Currency: "JPY", Credit: decimal.NewFromInt(500), CreatedAt: at},
	}

	ev := NewTransactionEvent("ev-1", entries, decimal.NewFromInt(1500))

	if ev.ID != "ev-1" || ev.AggregateID != "tx-1" || ev.AggregateType != AggregateTypeTransaction {
		t.Fatalf("unexpected identity: %+v", ev)
	}
	if ev.EventType != EventTypeTransactionPosted {
		t.Errorf("EventType = %q, want %q", ev.EventType, EventTypeTransactionPosted)
	}
	if !ev.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt = %v, want %v", ev.CreatedAt, at)
	}
	if got := ev.Payload["amount"]; got != "1500" {
		t.Errorf("amount = %v, want 1500", got)
	}
	if got := ev.Payload["account_ids"]; !reflect.DeepEqual(got, []string{"bank", "cash"}) {
		t.Errorf("account_ids = %v", got)
	}
	if got := ev.Payload["line_count"]; got != 3 {
		t.Errorf("line_count = %v, want 3", got)
	}
	if _, ok := ev.Payload["reverses_transaction_id"]; ok {
		t.Error("plain posting must not carry reverses_transaction_id")
	}
}

func TestNewTransactionEvent_Reversal(t *testing.T) {
	orig := "tx-0"
	entries := []*JournalEntry{
		{TransactionID: "tx-1", AccountID: "cash", Currency: "USD", Credit: decimal.NewFromInt(5), ReversesTransactionID: &orig},
		{TransactionID: "tx-1", AccountID: "equity", Currency: "USD", Debit: decimal.NewFromInt(5), ReversesTransactionID: &orig},
	}

	ev := NewTransactionEvent("ev-2", entries, decimal.NewFromInt(5))

	if ev.EventType != EventTypeTransactionReversed {
		t.Errorf("EventType = %q, want %q", ev.EventType, EventTypeTransactionReversed)
	}
	if got := ev.Payload["reverses_transaction_id"]; got != "tx-0" {
		t.Errorf("reverses_transaction_id = %v", got)
	}
	if got := ev.Payload["amount"]; got != "5.00" {
		t.Errorf("amount = %v, want 5.00", got)
	}
}

func TestNewAccountRegisteredEvent(t *testing.T) {
	a := &Account{ID: "acc-1", Type: AccountTypeAsset, Name: "Cash", Currency: "USD"}

	ev := NewAccountRegisteredEvent("ev-3", a)
	if ev.AggregateID != "acc-1" || ev.EventType != EventTypeAccountRegistered {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if _, ok := ev.Payload["cash_flow_category"]; ok {
		t.Error("untagged account must not carry cash_flow_category")
	}

	a.CashFlowCategory = CashFlowInvesting
	ev = NewAccountRegisteredEvent("ev-4", a)
	if got := ev.Payload["cash_flow_category"]; got != "investing" {
		t.Errorf("cash_flow_category = %v", got)
	}
}
