package dto

import (
	"time"

	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// Monetary fields are rendered as fixed-scale decimal strings.

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	Name             string    `json:"name"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	CashFlowCategory string    `json:"cash_flow_category,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:               a.ID,
		Type:             string(a.Type),
		Name:             a.Name,
		Currency:         a.Currency,
		Status:           string(a.Status),
		CashFlowCategory: string(a.CashFlowCategory),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int                `json:"total"`
}

// BalanceResponse is the balance of one account.
type BalanceResponse struct {
	AccountID    string    `json:"account_id"`
	AccountType  string    `json:"account_type"`
	Currency     string    `json:"currency"`
	Balance      string    `json:"balance"`
	TotalDebits  string    `json:"total_debits"`
	TotalCredits string    `json:"total_credits"`
	LastSequence int64     `json:"last_sequence"`
	AsOf         time.Time `json:"as_of"`
}

// BalanceFromDomain converts a computed balance to response.
func BalanceFromDomain(b *domain.Balance) *BalanceResponse {
	return &BalanceResponse{
		AccountID:    b.AccountID,
		AccountType:  string(b.AccountType),
		Currency:     b.Currency,
		Balance:      domain.FormatAmount(b.Balance, b.Currency),
		TotalDebits:  domain.FormatAmount(b.TotalDebits, b.Currency),
		TotalCredits: domain.FormatAmount(b.TotalCredits, b.Currency),
		LastSequence: b.LastSequence,
		AsOf:         b.AsOf,
	}
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID                    string    `json:"entry_id"`
	TransactionID         string    `json:"transaction_id"`
	SequenceNumber        int64     `json:"sequence_number"`
	LineNumber            int       `json:"line_number"`
	AccountID             string    `json:"account_id"`
	AccountName           string    `json:"account_name,omitempty"`
	AccountType           string    `json:"account_type,omitempty"`
	Currency              string    `json:"currency"`
	Debit                 string    `json:"debit_amount"`
	Credit                string    `json:"credit_amount"`
	Description           string    `json:"description,omitempty"`
	ReversesTransactionID *string   `json:"reverses_transaction_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	return &EntryResponse{
		ID:                    e.ID,
		TransactionID:         e.TransactionID,
		SequenceNumber:        e.SequenceNumber,
		LineNumber:            e.LineNumber,
		AccountID:             e.AccountID,
		Currency:              e.Currency,
		Debit:                 domain.FormatAmount(e.Debit, e.Currency),
		Credit:                domain.FormatAmount(e.Credit, e.Currency),
		Description:           e.Description,
		ReversesTransactionID: e.ReversesTransactionID,
		CreatedAt:             e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.JournalEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// EntryViewFromDomain converts an entry joined with its account.
func EntryViewFromDomain(v *domain.EntryView) *EntryResponse {
	resp := EntryFromDomain(&v.JournalEntry)
	resp.AccountName = v.AccountName
	resp.AccountType = string(v.AccountType)
	return resp
}

// TransactionResponse is a posted transaction with its lines.
type TransactionResponse struct {
	TransactionID string           `json:"transaction_id"`
	Replayed      bool             `json:"replayed,omitempty"`
	Entries       []*EntryResponse `json:"entries"`
}

// TransactionFromResult converts a posting result to response.
func TransactionFromResult(r *usecase.PostTransactionResult) *TransactionResponse {
	return &TransactionResponse{
		TransactionID: r.TransactionID,
		Replayed:      r.Replayed,
		Entries:       EntriesFromDomain(r.Entries),
	}
}

// PaginationResponse describes one page of a listing.
type PaginationResponse struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// EntryFiltersResponse echoes the filters applied to a listing.
type EntryFiltersResponse struct {
	AccountID     string     `json:"account_id,omitempty"`
	AccountType   string     `json:"account_type,omitempty"`
	AccountName   string     `json:"account_name,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries    []*EntryResponse     `json:"entries"`
	Pagination PaginationResponse   `json:"pagination"`
	Filters    EntryFiltersResponse `json:"filters_applied"`
}

// ListEntriesFromResult converts a page of entries to response.
func ListEntriesFromResult(r *usecase.ListEntriesResult) *ListEntriesResponse {
	entries := make([]*EntryResponse, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = EntryViewFromDomain(e)
	}

	return &ListEntriesResponse{
		Entries:    entries,
		Pagination: PaginationResponse(r.Pagination),
		Filters: EntryFiltersResponse{
			AccountID:     r.Filters.AccountID,
			AccountType:   string(r.Filters.AccountType),
			AccountName:   r.Filters.AccountName,
			Currency:      r.Filters.Currency,
			TransactionID: r.Filters.TransactionID,
			StartDate:     r.Filters.StartDate,
			EndDate:       r.Filters.EndDate,
		},
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
