package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/paymint/paymint/internal/adapter/http/dto"
	"github.com/paymint/paymint/internal/adapter/http/middleware"
	"github.com/paymint/paymint/internal/domain"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHistory(t *testing.T) {
	txn := sampleTransaction()

	h := NewLedgerHandler(&stubLedgerService{
		historyFn: func(ctx context.Context, accountID string) ([]domain.HistoryEntry, error) {
			if accountID != "acc-1" {
				t.Fatalf("expected history for acc-1, got %s", accountID)
			}
			return []domain.HistoryEntry{
				{Transaction: txn, Direction: domain.DirectionSent},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/transactions", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), aliceIdentity))
	rec := httptest.NewRecorder()
	h.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []dto.HistoryEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].ID != "txn-1" || resp[0].Direction != "sent" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewLedgerHandler(&stubLedgerService{
		historyFn: func(ctx context.Context, accountID string) ([]domain.HistoryEntry, error) {
			return []domain.HistoryEntry{}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me/transactions", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), aliceIdentity))
	rec := httptest.NewRecorder()
	h.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestGetTransaction(t *testing.T) {
	h := NewLedgerHandler(&stubLedgerService{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			if id != "txn-1" {
				return nil, domain.ErrTransactionNotFound
			}
			return sampleTransaction(), nil
		},
	})

	tests := []struct {
		name     string
		identity *domain.Identity
		id       string
		want     int
	}{
		{name: "participant sender", identity: aliceIdentity, id: "txn-1", want: http.StatusOK},
		{
			name:     "participant receiver",
			identity: &domain.Identity{AccountID: "acc-2"},
			id:       "txn-1",
			want:     http.StatusOK,
		},
		{
			name:     "outsider reads as not found",
			identity: &domain.Identity{AccountID: "acc-9"},
			id:       "txn-1",
			want:     http.StatusNotFound,
		},
		{name: "unknown transaction", identity: aliceIdentity, id: "txn-404", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/"+tt.id, nil)
			req = req.WithContext(middleware.WithIdentity(req.Context(), tt.identity))
			req = withURLParam(req, "id", tt.id)

			rec := httptest.NewRecorder()
			h.Get(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
