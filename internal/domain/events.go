package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventTypeTransactionPosted   = "transaction.posted"
	EventTypeTransactionReversed = "transaction.reversed"
	EventTypeAccountRegistered   = "account.registered"
)

const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeAccount     = "account"
)

// OutboxEvent is a change notification stored alongside the change itself
// and published later by the outbox worker.
type OutboxEvent struct {
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Payload       map[string]any
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Published     bool
}

// NewAccountRegisteredEvent describes a newly registered account.
func NewAccountRegisteredEvent(id string, a *Account) *OutboxEvent {
	payload := map[string]any{
		"account_id": a.ID,
		"type":       string(a.Type),
		"name":       a.Name,
		"currency":   a.Currency,
	}
	if a.CashFlowCategory != CashFlowNone {
		payload["cash_flow_category"] = string(a.CashFlowCategory)
	}

	return &OutboxEvent{
		ID:            id,
		AggregateID:   a.ID,
		AggregateType: AggregateTypeAccount,
		EventType:     EventTypeAccountRegistered,
		Payload:       payload,
		CreatedAt:     a.CreatedAt,
	}
}

// NewTransactionEvent describes the committed lines of one transaction.
// entries must be non-empty and share a transaction id; total is the sum of
// the debit side. Reversals are recognized by ReversesTransactionID.
func NewTransactionEvent(id string, entries []*JournalEntry, total decimal.Decimal) *OutboxEvent {
	first := entries[0]

	seen := make(map[string]struct{}, len(entries))
	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; ok {
			continue
		}
		seen[e.AccountID] = struct{}{}
		accountIDs = append(accountIDs, e.AccountID)
	}
	sort.Strings(accountIDs)

	eventType := EventTypeTransactionPosted
	payload := map[string]any{
		"transaction_id": first.TransactionID,
		"currency":       first.Currency,
		"amount":         FormatAmount(total, first.Currency),
		"account_ids":    accountIDs,
		"line_count":     len(entries),
		"posted_at":      first.CreatedAt,
	}
	if first.ReversesTransactionID != nil {
		eventType = EventTypeTransactionReversed
		payload["reverses_transaction_id"] = *first.ReversesTransactionID
	}

	return &OutboxEvent{
		ID:            id,
		AggregateID:   first.TransactionID,
		AggregateType: AggregateTypeTransaction,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     first.CreatedAt,
	}
}
