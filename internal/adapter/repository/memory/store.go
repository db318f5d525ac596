// Package memory implements the repository interfaces against
// process-lifetime maps. Both repositories share one Store; transfers run
// inside a store-wide critical section (see TxManager), which serializes
// them and makes the debit, credit, and ledger append appear atomic to
// readers.
package memory

import (
	"sync"

	"github.com/paymint/paymint/internal/domain"
)

// Store holds the shared in-memory state. It resets on process restart.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	txns     []*domain.Transaction
	txnByID  map[string]*domain.Transaction
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		txnByID:  make(map[string]*domain.Transaction),
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func cloneTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	if t.FraudReason != nil {
		reason := *t.FraudReason
		c.FraudReason = &reason
	}
	return &c
}
