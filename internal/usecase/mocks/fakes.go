// Package mocks also carries simple stateful fakes for table-driven tests
// where map-backed behavior reads better than gomock expectations.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/usecase"
)

// FakeAccountRepository is a map-backed AccountRepository. Any Func field
// overrides the default behavior for that method.
type FakeAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByAccountNumberFn  func(ctx context.Context, number string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores an account directly, bypassing any overrides.
func (f *FakeAccountRepository) Seed(accounts ...*domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
}

func (f *FakeAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[account.ID] = account
	return nil
}

func (f *FakeAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if acc, ok := f.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (f *FakeAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, acc := range f.accounts {
		if strings.EqualFold(acc.Email, email) {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *FakeAccountRepository) GetByAccountNumber(ctx context.Context, number string) (*domain.Account, error) {
	if f.GetByAccountNumberFn != nil {
		return f.GetByAccountNumberFn(ctx, number)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, acc := range f.accounts {
		if strings.EqualFold(acc.AccountNumber, number) {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *FakeAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if f.GetByIDsForUpdateFunc != nil {
		return f.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := f.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (f *FakeAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if f.UpdateBalanceFunc != nil {
		return f.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

func (f *FakeAccountRepository) SetAccountNumber(ctx context.Context, id, number string, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.AccountNumber = number
	acc.UpdatedAt = updatedAt
	return nil
}

// FakeLedgerRepository is a slice-backed LedgerRepository.
type FakeLedgerRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction
}

func NewFakeLedgerRepository() *FakeLedgerRepository {
	return &FakeLedgerRepository{}
}

func (f *FakeLedgerRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txns = append(f.txns, txn)
	return nil
}

func (f *FakeLedgerRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, txn := range f.txns {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (f *FakeLedgerRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var result []*domain.Transaction
	for _, txn := range f.txns {
		if txn.From.AccountID == accountID || txn.To.AccountID == accountID {
			result = append(result, txn)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *FakeLedgerRepository) MarkFraudulent(ctx context.Context, id, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, txn := range f.txns {
		if txn.ID == id {
			txn.FraudReported = true
			txn.FraudReason = &reason
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

// All returns every stored transaction in insertion order.
func (f *FakeLedgerRepository) All() []*domain.Transaction {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]*domain.Transaction(nil), f.txns...)
}

// FakeTransaction is a no-op store transaction.
type FakeTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *FakeTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *FakeTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// FakeTransactionManager hands out FakeTransactions.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
	Last      *FakeTransaction
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.Last = &FakeTransaction{}
	return m.Last, nil
}

// FakeIDGenerator returns sequential IDs.
type FakeIDGenerator struct {
	mu sync.Mutex
	n  int
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (g *FakeIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("txn-%04d", g.n)
}
