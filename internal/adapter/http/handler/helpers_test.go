package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/entries?page=3", nil)
	if got := parseIntQuery(req, "page", 1); got != 3 {
		t.Fatalf("expected page=3, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/entries?page=invalid", nil)
	if got := parseIntQuery(req, "page", 1); got != 1 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "page", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestParseTimeQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		endOfDay bool
		want     *time.Time
		wantErr  bool
	}{
		{name: "missing", query: "", want: nil},
		{
			name:  "date at start of day",
			query: "d=2024-03-01",
			want:  ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "date inclusive to end of day",
			query:    "d=2024-03-01",
			endOfDay: true,
			want:     ptr(time.Date(2024, 3, 1, 23, 59, 59, 999999999, time.UTC)),
		},
		{
			name:     "rfc3339 kept exact",
			query:    "d=2024-03-01T10:30:00Z",
			endOfDay: true,
			want:     ptr(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)),
		},
		{name: "garbage", query: "d=yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := parseTimeQuery(req, "d", tt.endOfDay)
			if tt.wantErr {
				if !errors.Is(err, errInvalidDate) {
					t.Fatalf("expected errInvalidDate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Fatalf("expected %v, got %v", *tt.want, *got)
			}
		})
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"transaction not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"duplicate account", domain.ErrDuplicateAccount, http.StatusConflict},
		{"idempotency conflict", domain.ErrIdempotencyConflict, http.StatusConflict},
		{"unbalanced", fmt.Errorf("%w: debits 100, credits 99.99", domain.ErrUnbalancedTransaction), http.StatusUnprocessableEntity},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"currency mismatch", domain.ErrCurrencyMismatch, http.StatusBadRequest},
		{"inactive account", domain.ErrAccountInactive, http.StatusBadRequest},
		{"bad date range", domain.ErrInvalidDateRange, http.StatusBadRequest},
		{"storage failure", fmt.Errorf("%w: commit", domain.ErrStorageFailure), http.StatusServiceUnavailable},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" || resp.Message != "detail" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}

func ptr[T any](v T) *T {
	return &v
}
