package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

// StatusCompleted is the only status the transfer workflow produces.
const StatusCompleted TransactionStatus = "completed"

// Direction is the orientation of a transaction relative to a viewing
// account. It is computed at read time and never stored.
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

// Party is an immutable snapshot of an account's identity taken when a
// transfer completes. Renaming the account later does not change it.
type Party struct {
	AccountID string
	Name      string
	Email     string
}

// Transaction records a completed fund movement between two accounts.
// It is append-only; the only permitted mutation is the one-way
// FraudReported transition.
type Transaction struct {
	ID            string
	From          Party
	To            Party
	Amount        decimal.Decimal
	Status        TransactionStatus
	Description   string
	FraudReported bool
	FraudReason   *string
	CreatedAt     time.Time
}

// Validate validates the transaction invariants.
func (t *Transaction) Validate() error {
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.From.AccountID == t.To.AccountID {
		return ErrSelfTransfer
	}

	return nil
}

// DirectionFor computes the transaction's orientation relative to accountID.
func (t *Transaction) DirectionFor(accountID string) Direction {
	if t.From.AccountID == accountID {
		return DirectionSent
	}
	return DirectionReceived
}

// HistoryEntry is a transaction annotated with its direction relative to
// the account whose history is being read.
type HistoryEntry struct {
	Transaction *Transaction
	Direction   Direction
}

// FraudVerdict is the evaluator's judgment for a reported transaction.
type FraudVerdict struct {
	Fraudulent bool
	Reason     string
}
