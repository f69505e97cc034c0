package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryLine is one caller-supplied line of a transaction to post.
type EntryLine struct {
	AccountID   string
	Currency    string
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// IsDebit reports whether the line debits its account.
func (l EntryLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the nonzero side of the line.
func (l EntryLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// JournalEntry is an immutable posted line of the ledger.
type JournalEntry struct {
	CreatedAt             time.Time
	ReversesTransactionID *string
	ID                    string
	TransactionID         string
	AccountID             string
	Currency              string
	Description           string
	Debit                 decimal.Decimal
	Credit                decimal.Decimal
	SequenceNumber        int64
	LineNumber            int
}

// EntryView is a journal entry joined with its account for read consumers.
type EntryView struct {
	JournalEntry
	AccountType      AccountType
	AccountName      string
	CashFlowCategory CashFlowCategory
}

// EntryFilter narrows an entry listing. Zero fields match everything;
// StartDate and EndDate are inclusive bounds on CreatedAt.
type EntryFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	AccountID     string
	AccountType   AccountType
	AccountName   string
	Currency      string
	TransactionID string
}

// AccountTotals holds the debit and credit sums of one account over a window.
type AccountTotals struct {
	AccountID    string
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	LastSequence int64
}

// AccountBalance is the materialized running total of an account,
// valid up to and including LastSequence.
type AccountBalance struct {
	UpdatedAt    time.Time
	AccountID    string
	Currency     string
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	LastSequence int64
}

// Apply adds a posted entry to the running total.
func (b *AccountBalance) Apply(e *JournalEntry) {
	b.TotalDebits = b.TotalDebits.Add(e.Debit)
	b.TotalCredits = b.TotalCredits.Add(e.Credit)
	if e.SequenceNumber > b.LastSequence {
		b.LastSequence = e.SequenceNumber
	}
	b.UpdatedAt = e.CreatedAt
}

// Balance is the computed balance of one account at a point in time.
type Balance struct {
	AsOf         time.Time
	AccountID    string
	Currency     string
	AccountType  AccountType
	Balance      decimal.Decimal
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	LastSequence int64
}

// IdempotencyRecord binds a caller key to the transaction it produced.
type IdempotencyRecord struct {
	CreatedAt     time.Time
	Key           string
	RequestHash   string
	TransactionID string
}

// RequestHash returns a stable digest of the posting payload. Amounts are
// normalized so "100" and "100.00" hash identically.
func RequestHash(lines []EntryLine) string {
	var b strings.Builder
	for i, l := range lines {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte('|')
		b.WriteString(l.AccountID)
		b.WriteByte('|')
		b.WriteString(NormalizeCurrency(l.Currency))
		b.WriteByte('|')
		b.WriteString(l.Debit.String())
		b.WriteByte('|')
		b.WriteString(l.Credit.String())
		b.WriteByte('|')
		b.WriteString(l.Description)
		b.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
