package memory

import (
	"context"
	"sort"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository on a Store. The
// transaction slice is append-only; MarkFraudulent is the single permitted
// mutation.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// Create stages an append on the transaction. The record becomes visible
// to readers the moment the transaction commits.
func (r *LedgerRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	memTx, err := asTx(tx)
	if err != nil {
		return err
	}

	stored := cloneTransaction(txn)
	memTx.stage(func() {
		r.store.txns = append(r.store.txns, stored)
		r.store.txnByID[stored.ID] = stored
	})

	return nil
}

// GetByID retrieves a transaction by ID.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if txn, ok := r.store.txnByID[id]; ok {
		return cloneTransaction(txn), nil
	}

	return nil, domain.ErrTransactionNotFound
}

// ListByAccount returns every transaction where the account is sender or
// receiver, most recent first.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*domain.Transaction
	for _, txn := range r.store.txns {
		if txn.From.AccountID == accountID || txn.To.AccountID == accountID {
			result = append(result, cloneTransaction(txn))
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// MarkFraudulent sets the fraud flag and reason. The transition is one-way;
// a second call still succeeds and only overwrites the reason.
func (r *LedgerRepository) MarkFraudulent(ctx context.Context, id, reason string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	txn, ok := r.store.txnByID[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}

	txn.FraudReported = true
	txn.FraudReason = &reason

	return nil
}
