package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

// PostingService defines the behavior needed by TransactionHandler.
type PostingService interface {
	PostTransaction(ctx context.Context, input usecase.PostTransactionInput) (*usecase.PostTransactionResult, error)
	ReverseTransaction(ctx context.Context, transactionID, description string) (*usecase.PostTransactionResult, error)
	GetTransaction(ctx context.Context, transactionID string) ([]*domain.JournalEntry, error)
}

// TransactionHandler handles posting and reversal requests.
type TransactionHandler struct {
	postingUC PostingService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(postingUC PostingService) *TransactionHandler {
	return &TransactionHandler{postingUC: postingUC}
}

// Create posts a balanced transaction. A replayed idempotency key answers
// 200 with the original transaction instead of 201.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PostTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.postingUC.PostTransaction(r.Context(), req.ToUseCaseInput(r.Header.Get(IdempotencyKeyHeader)))
	if err != nil {
		writeDomainError(w, r, "failed to post transaction", err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	writeJSON(w, status, dto.TransactionFromResult(result))
}

// Get returns the lines of a transaction.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := h.postingUC.GetTransaction(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionResponse{
		TransactionID: id,
		Entries:       dto.EntriesFromDomain(entries),
	})
}

// Reverse posts the mirror image of a transaction. The body is optional.
func (h *TransactionHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	var req dto.ReverseTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.postingUC.ReverseTransaction(r.Context(), chi.URLParam(r, "id"), req.Description)
	if err != nil {
		writeDomainError(w, r, "failed to reverse transaction", err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	writeJSON(w, status, dto.TransactionFromResult(result))
}
