package memory

import (
	"context"
	"errors"

	"github.com/paymint/paymint/internal/usecase"
)

// TxManager implements usecase.TransactionManager with a single store-wide
// write lock: Begin acquires it, Commit applies the staged writes and
// releases it, Rollback discards them. Holding one lock for the whole
// transfer serializes transfers, which is the documented concurrency model
// for the in-memory store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin acquires the store lock and returns a transaction that stages
// writes until Commit.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.store.mu.Lock()
	return &Tx{store: m.store}, nil
}

// Tx is an in-memory store transaction. It owns the store's write lock
// between Begin and Commit/Rollback; repository methods called with a Tx
// read the store directly and stage their writes on it.
type Tx struct {
	store *Store
	ops   []func()
	done  bool
}

func (t *Tx) stage(op func()) {
	t.ops = append(t.ops, op)
}

// Commit applies the staged writes and releases the store lock.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("transaction already finished")
	}

	for _, op := range t.ops {
		op()
	}

	t.done = true
	t.store.mu.Unlock()

	return nil
}

// Rollback discards the staged writes and releases the store lock. Calling
// it after Commit is a no-op, so `defer tx.Rollback(ctx)` is safe.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}

	t.ops = nil
	t.done = true
	t.store.mu.Unlock()

	return nil
}

func asTx(tx usecase.Transaction) (*Tx, error) {
	memTx, ok := tx.(*Tx)
	if !ok || memTx.done {
		return nil, errors.New("not an active memory transaction")
	}
	return memTx, nil
}
