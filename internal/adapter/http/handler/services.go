package handler

import (
	"context"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/usecase"
)

// Service interfaces consumed by the handlers. The use case structs
// satisfy them directly; the postgres driver substitutes a retrying
// wrapper for TransferService.

type AccountService interface {
	RegisterSignIn(ctx context.Context, identity domain.Identity) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

type TransferService interface {
	SendMoney(ctx context.Context, input usecase.SendMoneyInput) (*domain.Transaction, error)
}

type LedgerService interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	History(ctx context.Context, accountID string) ([]domain.HistoryEntry, error)
}

type FraudService interface {
	ReportFraud(ctx context.Context, transactionID, userReport string) (*domain.FraudVerdict, error)
}

// TokenIssuer mints session tokens at sign-in.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}
