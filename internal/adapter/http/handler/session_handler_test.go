package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/adapter/http/dto"
	"github.com/paymint/paymint/internal/adapter/http/middleware"
	"github.com/paymint/paymint/internal/domain"
)

func aliceAccount() *domain.Account {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Account{
		ID:            "acc-1",
		Name:          "Alice",
		Email:         "alice@example.com",
		AccountNumber: "AB12CD",
		Balance:       decimal.NewFromInt(1000),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestSessionCreate(t *testing.T) {
	var gotIdentity domain.Identity

	h := NewSessionHandler(&stubAccountService{
		registerFn: func(ctx context.Context, identity domain.Identity) (*domain.Account, error) {
			gotIdentity = identity
			return aliceAccount(), nil
		},
	}, &stubIssuer{token: "session-token"}, testMetrics())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session",
		strings.NewReader(`{"email":"Alice@Example.com","name":"Alice"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if gotIdentity.Email != "Alice@Example.com" || gotIdentity.Name != "Alice" {
		t.Fatalf("unexpected identity passed to use case: %+v", gotIdentity)
	}

	var resp dto.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "session-token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	if resp.Account == nil || resp.Account.ID != "acc-1" || resp.Account.AccountNumber != "AB12CD" {
		t.Fatalf("unexpected account in response: %+v", resp.Account)
	}
}

func TestSessionCreateValidation(t *testing.T) {
	h := NewSessionHandler(&stubAccountService{}, &stubIssuer{token: "t"}, testMetrics())

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: `{`},
		{name: "missing email", body: `{"name":"Alice"}`},
		{name: "missing name", body: `{"email":"alice@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestMe(t *testing.T) {
	h := NewSessionHandler(&stubAccountService{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "acc-1" {
				return nil, domain.ErrAccountNotFound
			}
			return aliceAccount(), nil
		},
	}, &stubIssuer{}, testMetrics())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), aliceIdentity))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Email != "alice@example.com" || !resp.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMeWithoutIdentity(t *testing.T) {
	h := NewSessionHandler(&stubAccountService{}, &stubIssuer{}, testMetrics())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
