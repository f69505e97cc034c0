package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/domain"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	TrialBalance(ctx context.Context, asOf time.Time, currency string) (*domain.TrialBalance, error)
	BalanceSheet(ctx context.Context, asOf time.Time, currency string) (*domain.BalanceSheet, error)
	IncomeStatement(ctx context.Context, period domain.Period, currency string) (*domain.IncomeStatement, error)
	CashFlowStatement(ctx context.Context, period domain.Period, currency string) (*domain.CashFlowStatement, error)
}

// ReportHandler serves financial statements.
type ReportHandler struct {
	reportUC ReportService
	now      func() time.Time
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// TrialBalance serves the trial balance as of as_of (default now).
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	report, err := h.reportUC.TrialBalance(r.Context(), asOf, r.URL.Query().Get("currency"))
	if err != nil {
		writeDomainError(w, r, "failed to generate trial balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(report, h.now()))
}

// BalanceSheet serves the balance sheet as of as_of (default now).
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, ok := h.asOf(w, r)
	if !ok {
		return
	}

	report, err := h.reportUC.BalanceSheet(r.Context(), asOf, r.URL.Query().Get("currency"))
	if err != nil {
		writeDomainError(w, r, "failed to generate balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(report, h.now()))
}

// IncomeStatement serves the income statement over start_date..end_date.
func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	report, err := h.reportUC.IncomeStatement(r.Context(), period, r.URL.Query().Get("currency"))
	if err != nil {
		writeDomainError(w, r, "failed to generate income statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(report, h.now()))
}

// CashFlow serves the cash-flow statement over start_date..end_date.
func (h *ReportHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	period, ok := h.period(w, r)
	if !ok {
		return
	}

	report, err := h.reportUC.CashFlowStatement(r.Context(), period, r.URL.Query().Get("currency"))
	if err != nil {
		writeDomainError(w, r, "failed to generate cash flow statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CashFlowFromDomain(report, h.now()))
}

func (h *ReportHandler) asOf(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	asOf, err := parseTimeQuery(r, "as_of", true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of", err.Error())
		return time.Time{}, false
	}
	if asOf == nil {
		return h.now(), true
	}
	return *asOf, true
}

func (h *ReportHandler) period(w http.ResponseWriter, r *http.Request) (domain.Period, bool) {
	start, err := parseTimeQuery(r, "start_date", false)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return domain.Period{}, false
	}
	end, err := parseTimeQuery(r, "end_date", true)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return domain.Period{}, false
	}
	if start == nil || end == nil {
		writeError(w, http.StatusBadRequest, "missing period", "start_date and end_date are required")
		return domain.Period{}, false
	}
	return domain.Period{Start: *start, End: *end}, true
}
