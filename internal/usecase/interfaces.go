package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByAccountNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	SetAccountNumber(ctx context.Context, id, number string, updatedAt time.Time) error
}

// LedgerRepository defines data access for transactions. Transactions are
// append-only; MarkFraudulent is the single permitted mutation.
type LedgerRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error)
	MarkFraudulent(ctx context.Context, id, reason string) error
}

// FraudEvaluator is the opaque external capability that judges a reported
// transaction. Implementations must honor ctx cancellation.
type FraudEvaluator interface {
	Evaluate(ctx context.Context, transactionSummary, userReport string) (*domain.FraudVerdict, error)
}

// Transaction represents a store transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
