package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/paymint/paymint/internal/adapter/http/dto"
	"github.com/paymint/paymint/internal/adapter/http/handler"
	"github.com/paymint/paymint/internal/adapter/repository/memory"
	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/infrastructure/auth"
	"github.com/paymint/paymint/internal/infrastructure/metrics"
	"github.com/paymint/paymint/internal/usecase"
)

type stubEvaluator struct {
	verdict *domain.FraudVerdict
	err     error
}

func (s *stubEvaluator) Evaluate(ctx context.Context, transactionSummary, userReport string) (*domain.FraudVerdict, error) {
	return s.verdict, s.err
}

type sequentialIDs struct{ n int }

func (g *sequentialIDs) Generate() string {
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	accountRepo := memory.NewAccountRepository(store)
	ledgerRepo := memory.NewLedgerRepository(store)
	txManager := memory.NewTxManager(store)

	accountUC := usecase.NewAccountUseCase(accountRepo, &sequentialIDs{})
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, ledgerRepo, &sequentialIDs{}, nil)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo, nil)
	fraudUC := usecase.NewFraudUseCase(ledgerRepo, &stubEvaluator{
		verdict: &domain.FraudVerdict{Fraudulent: true, Reason: "Transfer pattern is anomalous."},
	}, nil, time.Second)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	router := NewRouter(RouterConfig{
		SessionHandler:  handler.NewSessionHandler(accountUC, jwtManager, m),
		TransferHandler: handler.NewTransferHandler(transferUC, m),
		LedgerHandler:   handler.NewLedgerHandler(ledgerUC),
		FraudHandler:    handler.NewFraudHandler(ledgerUC, fraudUC, m),
		HealthHandler:   handler.NewHealthHandler(),
		JWTManager:      jwtManager,
		Metrics:         m,
		Registry:        registry,
		Logger:          zerolog.Nop(),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token, body string, out any) int {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, url, err)
		}
	}

	return resp.StatusCode
}

func signIn(t *testing.T, srv *httptest.Server, email, name string) dto.SessionResponse {
	t.Helper()

	var session dto.SessionResponse
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/session", "",
		`{"email":"`+email+`","name":"`+name+`"}`, &session)
	if code != http.StatusOK {
		t.Fatalf("sign-in returned %d", code)
	}
	return session
}

func TestRouterEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	alice := signIn(t, srv, "alice@example.com", "Alice")
	bob := signIn(t, srv, "bob@example.com", "Bob")

	if alice.Account.Balance.String() != "1000" {
		t.Fatalf("expected starting balance 1000, got %s", alice.Account.Balance)
	}

	// Unauthenticated requests are rejected
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/me", "", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}

	// Alice pays Bob by account number
	var txn dto.TransactionResponse
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/transfers", alice.Token,
		`{"recipient":"`+bob.Account.AccountNumber+`","amount":"200","description":"rent"}`, &txn)
	if code != http.StatusCreated {
		t.Fatalf("transfer returned %d", code)
	}
	if txn.From.AccountID != alice.Account.ID || txn.To.AccountID != bob.Account.ID {
		t.Fatalf("unexpected transaction parties: %+v", txn)
	}

	// Balances moved
	var me dto.AccountResponse
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/me", alice.Token, "", &me); code != http.StatusOK {
		t.Fatalf("me returned %d", code)
	}
	if me.Balance.String() != "800" {
		t.Fatalf("expected balance 800 after transfer, got %s", me.Balance)
	}

	// Bob sees the transaction as received
	var history []dto.HistoryEntryResponse
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/me/transactions", bob.Token, "", &history); code != http.StatusOK {
		t.Fatalf("history returned %d", code)
	}
	if len(history) != 1 || history[0].Direction != "received" {
		t.Fatalf("unexpected history: %+v", history)
	}

	// Either party can read the transaction detail
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/transactions/"+txn.ID, bob.Token, "", nil); code != http.StatusOK {
		t.Fatalf("transaction detail returned %d", code)
	}

	// Fraud report returns the verdict and flags the transaction
	var verdict dto.FraudReportResponse
	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/transactions/"+txn.ID+"/fraud-report", alice.Token,
		`{"report":"I do not recognize this payment"}`, &verdict)
	if code != http.StatusOK {
		t.Fatalf("fraud report returned %d", code)
	}
	if !verdict.Fraudulent || verdict.Reason == "" {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}

	var flagged dto.TransactionResponse
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/transactions/"+txn.ID, alice.Token, "", &flagged); code != http.StatusOK {
		t.Fatalf("transaction detail returned %d", code)
	}
	if !flagged.FraudReported || flagged.FraudReason == nil {
		t.Fatalf("expected transaction to be flagged: %+v", flagged)
	}
}

func TestRouterOperationalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s returned %d", path, resp.StatusCode)
		}
	}
}

func TestRouterRateLimit(t *testing.T) {
	store := memory.NewStore()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	accountUC := usecase.NewAccountUseCase(memory.NewAccountRepository(store), &sequentialIDs{})

	router := NewRouter(RouterConfig{
		SessionHandler:  handler.NewSessionHandler(accountUC, jwtManager, m),
		TransferHandler: handler.NewTransferHandler(nil, m),
		LedgerHandler:   handler.NewLedgerHandler(nil),
		FraudHandler:    handler.NewFraudHandler(nil, nil, m),
		HealthHandler:   handler.NewHealthHandler(),
		JWTManager:      jwtManager,
		Metrics:         m,
		Registry:        registry,
		Logger:          zerolog.Nop(),
		RateLimitRPS:    1,
		RateLimitBurst:  2,
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	var lastCode int
	for i := 0; i < 5; i++ {
		resp, err := http.Get(srv.URL + "/health")
		if err != nil {
			t.Fatalf("GET /health: %v", err)
		}
		resp.Body.Close()
		lastCode = resp.StatusCode
	}

	if lastCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after exhausting burst, got %d", lastCode)
	}
}
