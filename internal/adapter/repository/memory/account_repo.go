package memory

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository on a Store.
// Reads return copies so callers never alias live store state.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create stores a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.accounts[account.ID] = cloneAccount(account)

	return nil
}

// GetByID retrieves an account by exact ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if acc, ok := r.store.accounts[id]; ok {
		return cloneAccount(acc), nil
	}

	return nil, domain.ErrAccountNotFound
}

// GetByEmail retrieves an account by email, case-insensitively.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, acc := range r.store.accounts {
		if strings.EqualFold(acc.Email, email) {
			return cloneAccount(acc), nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

// GetByAccountNumber retrieves an account by account number,
// case-insensitively.
func (r *AccountRepository) GetByAccountNumber(ctx context.Context, number string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, acc := range r.store.accounts {
		if acc.AccountNumber != "" && strings.EqualFold(acc.AccountNumber, number) {
			return cloneAccount(acc), nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

// GetByIDsForUpdate retrieves accounts inside a transaction. The Tx already
// holds the store's write lock, so the maps are read directly.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if _, err := asTx(tx); err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		if acc, ok := r.store.accounts[id]; ok {
			accounts = append(accounts, cloneAccount(acc))
		}
	}

	return accounts, nil
}

// UpdateBalance stages a balance overwrite on the transaction. It performs
// no validation; non-negativity is the transfer workflow's responsibility.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	memTx, err := asTx(tx)
	if err != nil {
		return err
	}

	acc, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	memTx.stage(func() {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	})

	return nil
}

// SetAccountNumber backfills an account number outside any transaction.
func (r *AccountRepository) SetAccountNumber(ctx context.Context, id, number string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	acc, ok := r.store.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	acc.AccountNumber = number
	acc.UpdatedAt = updatedAt

	return nil
}
