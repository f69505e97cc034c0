package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gojournal/internal/adapter/http/dto"
	"github.com/iho/gojournal/internal/domain"
	"github.com/iho/gojournal/internal/usecase"
)

type accountServiceStub struct {
	registerFn  func(ctx context.Context, input usecase.RegisterAccountInput) (*domain.Account, error)
	getFn       func(ctx context.Context, id string) (*domain.Account, error)
	listFn      func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	setStatusFn func(ctx context.Context, id, status string) (*domain.Account, error)
	setCFCFn    func(ctx context.Context, id, category string) (*domain.Account, error)
}

func (s *accountServiceStub) RegisterAccount(ctx context.Context, input usecase.RegisterAccountInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func (s *accountServiceStub) SetAccountStatus(ctx context.Context, id, status string) (*domain.Account, error) {
	return s.setStatusFn(ctx, id, status)
}

func (s *accountServiceStub) SetCashFlowCategory(ctx context.Context, id, category string) (*domain.Account, error) {
	return s.setCFCFn(ctx, id, category)
}

type balanceServiceStub struct {
	computeFn func(ctx context.Context, accountID string, asOf *time.Time) (*domain.Balance, error)
}

func (s *balanceServiceStub) ComputeBalance(ctx context.Context, accountID string, asOf *time.Time) (*domain.Balance, error) {
	return s.computeFn(ctx, accountID, asOf)
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:       "acc-1",
		Type:     domain.AccountTypeAsset,
		Name:     "Cash",
		Currency: "USD",
		Status:   domain.AccountStatusActive,
	}

	var captured usecase.RegisterAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.RegisterAccountRequest{
		Type:     "asset",
		Name:     "Cash",
		Currency: "USD",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Type != "asset" || captured.Name != "Cash" || captured.Currency != "USD" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" || resp.Type != "asset" || resp.Status != "active" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterAccountInput) (*domain.Account, error) {
			t.Fatal("RegisterAccount should not be called for invalid payload")
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_MapsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate", domain.ErrDuplicateAccount, http.StatusConflict},
		{"bad type", domain.ErrInvalidAccountType, http.StatusBadRequest},
		{"db error", errors.New("db error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(&accountServiceStub{
				registerFn: func(ctx context.Context, input usecase.RegisterAccountInput) (*domain.Account, error) {
					return nil, tt.err
				},
			}, nil)

			body, _ := json.Marshal(dto.RegisterAccountRequest{Type: "asset", Name: "Cash", Currency: "USD"})
			req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestAccountHandler_Get(t *testing.T) {
	account := &domain.Account{ID: "acc-1", Name: "Cash"}
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "acc-1" {
				t.Fatalf("expected id acc-1, got %s", id)
			}
			return account, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List_PassesFilters(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			want := usecase.ListAccountsInput{Type: "asset", Currency: "USD", Status: "active"}
			if input != want {
				t.Fatalf("expected %+v, got %+v", want, input)
			}
			return []*domain.Account{{ID: "acc-1"}, {ID: "acc-2"}}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts?type=asset&currency=USD&status=active", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Accounts) != 2 || resp.Total != 2 {
		t.Fatalf("expected 2 accounts, got %+v", resp)
	}
}

func TestAccountHandler_SetStatus(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		setStatusFn: func(ctx context.Context, id, status string) (*domain.Account, error) {
			if id != "acc-1" || status != "inactive" {
				t.Fatalf("unexpected args %s %s", id, status)
			}
			return &domain.Account{ID: id, Status: domain.AccountStatusInactive}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/accounts/acc-1/status", bytes.NewBufferString(`{"status":"inactive"}`))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.SetStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAccountHandler_SetCashFlowCategory_Invalid(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		setCFCFn: func(ctx context.Context, id, category string) (*domain.Account, error) {
			return nil, domain.ErrInvalidCashFlowCategory
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/accounts/acc-1/cash-flow-category", bytes.NewBufferString(`{"cash_flow_category":"sideways"}`))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.SetCashFlowCategory(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Balance_AsOfDateIsEndOfDay(t *testing.T) {
	var gotAsOf *time.Time
	handler := NewAccountHandler(nil, &balanceServiceStub{
		computeFn: func(ctx context.Context, accountID string, asOf *time.Time) (*domain.Balance, error) {
			gotAsOf = asOf
			return &domain.Balance{
				AccountID:   accountID,
				Currency:    "USD",
				AccountType: domain.AccountTypeAsset,
				Balance:     decimal.RequireFromString("12.5"),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/balance?as_of=2024-03-01", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := time.Date(2024, 3, 1, 23, 59, 59, 999999999, time.UTC)
	if gotAsOf == nil || !gotAsOf.Equal(want) {
		t.Fatalf("expected as_of %v, got %v", want, gotAsOf)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Balance != "12.50" {
		t.Fatalf("expected balance 12.50, got %s", resp.Balance)
	}
}

func TestAccountHandler_Balance_InvalidAsOf(t *testing.T) {
	handler := NewAccountHandler(nil, &balanceServiceStub{
		computeFn: func(ctx context.Context, accountID string, asOf *time.Time) (*domain.Balance, error) {
			t.Fatal("ComputeBalance should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/balance?as_of=soon", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
