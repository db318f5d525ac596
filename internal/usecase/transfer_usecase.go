package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
)

// TransferUseCase handles the fund-transfer workflow.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	idGen       IDGenerator
	cache       Cache
}

// NewTransferUseCase creates a new TransferUseCase. cache may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	ledgerRepo LedgerRepository,
	idGen IDGenerator,
	cache Cache,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		idGen:       idGen,
		cache:       cache,
	}
}

// SendMoneyInput represents input for sending money.
type SendMoneyInput struct {
	SenderID    string
	Recipient   string
	Amount      decimal.Decimal
	Description string
}

// SendMoney validates and executes a balance move between two accounts and
// records the resulting transaction. Preconditions are checked in order,
// short-circuiting on the first failure. The debit, credit, and ledger
// append run in a single store transaction.
func (uc *TransferUseCase) SendMoney(ctx context.Context, input SendMoneyInput) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	sender, err := uc.accountRepo.GetByID(ctx, input.SenderID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrSenderNotFound
		}
		return nil, err
	}

	if err := sender.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	receiver, err := uc.resolveRecipient(ctx, input.Recipient)
	if err != nil {
		return nil, err
	}

	if sender.ID == receiver.ID {
		return nil, domain.ErrSelfTransfer
	}

	// Lock both accounts in sorted ID order (deadlock prevention).
	ids := []string{sender.ID, receiver.ID}
	sort.Strings(ids)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	for _, a := range accounts {
		switch a.ID {
		case sender.ID:
			sender = a
		case receiver.ID:
			receiver = a
		}
	}

	// Balance may have moved between the precondition check and the lock.
	if err := sender.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		From:        sender.Party(),
		To:          receiver.Party(),
		Amount:      input.Amount,
		Status:      domain.StatusCompleted,
		Description: input.Description,
		CreatedAt:   now,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, sender.ID, sender.ApplyDebit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, receiver.ID, receiver.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	invalidateHistory(ctx, uc.cache, sender.ID, receiver.ID)

	return txn, nil
}

// resolveRecipient resolves a receiver identifier, trying account number,
// then email, then account ID.
func (uc *TransferUseCase) resolveRecipient(ctx context.Context, identifier string) (*domain.Account, error) {
	lookups := []func(context.Context, string) (*domain.Account, error){
		uc.accountRepo.GetByAccountNumber,
		uc.accountRepo.GetByEmail,
		uc.accountRepo.GetByID,
	}

	for _, lookup := range lookups {
		account, err := lookup(ctx, identifier)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
	}

	return nil, domain.ErrReceiverNotFound
}
