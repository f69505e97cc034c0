package handler

import (
	"context"
	"net/http"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/domain"
)

// ReconciliationService defines the behavior needed by LedgerHandler.
type ReconciliationService interface {
	CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error)
	ReconcileAll(ctx context.Context) (*domain.ReconciliationReport, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	reconUC ReconciliationService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reconUC ReconciliationService) *LedgerHandler {
	return &LedgerHandler{reconUC: reconUC}
}

// CheckConsistency checks that debits equal credits in every currency.
// An inconsistent ledger answers 409.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconUC.CheckConsistency(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to check consistency", err)
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyFromDomain(report))
}

// Reconcile compares every materialized balance with the journal.
// Discrepancies answer 409.
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconUC.ReconcileAll(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to reconcile", err)
		return
	}

	status := http.StatusOK
	if !report.Reconciled() {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ReconciliationFromDomain(report))
}
