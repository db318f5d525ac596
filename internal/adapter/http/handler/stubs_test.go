package handler

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/infrastructure/metrics"
	"github.com/paymint/paymint/internal/usecase"
)

func testMetrics() *metrics.Metrics {
	return metrics.New(prometheus.NewRegistry())
}

type stubAccountService struct {
	registerFn func(ctx context.Context, identity domain.Identity) (*domain.Account, error)
	getFn      func(ctx context.Context, id string) (*domain.Account, error)
}

func (s *stubAccountService) RegisterSignIn(ctx context.Context, identity domain.Identity) (*domain.Account, error) {
	return s.registerFn(ctx, identity)
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

type stubTransferService struct {
	sendFn func(ctx context.Context, input usecase.SendMoneyInput) (*domain.Transaction, error)
}

func (s *stubTransferService) SendMoney(ctx context.Context, input usecase.SendMoneyInput) (*domain.Transaction, error) {
	return s.sendFn(ctx, input)
}

type stubLedgerService struct {
	getFn     func(ctx context.Context, id string) (*domain.Transaction, error)
	historyFn func(ctx context.Context, accountID string) ([]domain.HistoryEntry, error)
}

func (s *stubLedgerService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, id)
}

func (s *stubLedgerService) History(ctx context.Context, accountID string) ([]domain.HistoryEntry, error) {
	return s.historyFn(ctx, accountID)
}

type stubFraudService struct {
	reportFn func(ctx context.Context, transactionID, userReport string) (*domain.FraudVerdict, error)
}

func (s *stubFraudService) ReportFraud(ctx context.Context, transactionID, userReport string) (*domain.FraudVerdict, error) {
	return s.reportFn(ctx, transactionID, userReport)
}

type stubIssuer struct {
	token string
	err   error
}

func (s *stubIssuer) Issue(identity domain.Identity) (string, error) {
	return s.token, s.err
}

func sampleTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:          "txn-1",
		From:        domain.Party{AccountID: "acc-1", Name: "Alice", Email: "alice@example.com"},
		To:          domain.Party{AccountID: "acc-2", Name: "Bob", Email: "bob@example.com"},
		Amount:      decimal.NewFromInt(200),
		Status:      domain.StatusCompleted,
		Description: "rent",
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

var aliceIdentity = &domain.Identity{
	AccountID: "acc-1",
	Email:     "alice@example.com",
	Name:      "Alice",
}
