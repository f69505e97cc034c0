package handler

import (
	"context"
	"net/http"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	ListEntries(ctx context.Context, input usecase.ListEntriesInput) (*usecase.ListEntriesResult, error)
}

// EntryHandler handles journal listing requests.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// List returns one page of entries matching the query filters.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	start, err := parseTimeQuery(r, "start_date", false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}
	end, err := parseTimeQuery(r, "end_date", true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}

	q := r.URL.Query()
	result, err := h.entryUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		AccountID:     q.Get("account_id"),
		AccountType:   q.Get("account_type"),
		AccountName:   q.Get("account_name"),
		Currency:      q.Get("currency"),
		TransactionID: q.Get("transaction_id"),
		StartDate:     start,
		EndDate:       end,
		Page:          parseIntQuery(r, "page", 1),
		PerPage:       parseIntQuery(r, "per_page", 0),
	})
	if err != nil {
		writeDomainError(w, r, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesFromResult(result))
}
