package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo, idGen: idGen}
}

// RegisterSignIn upserts the account for an identity asserted by the
// external identity provider. It is called on every successful sign-in and
// is idempotent: an existing account is returned unchanged, except that a
// missing account number is backfilled. Identities without a provider ID
// are resolved by email.
func (uc *AccountUseCase) RegisterSignIn(ctx context.Context, identity domain.Identity) (*domain.Account, error) {
	account, err := uc.lookup(ctx, identity)
	if err == nil {
		if account.AccountNumber == "" {
			number, genErr := uc.freshAccountNumber(ctx)
			if genErr != nil {
				return nil, genErr
			}

			if setErr := uc.accountRepo.SetAccountNumber(ctx, account.ID, number, time.Now().UTC()); setErr != nil {
				return nil, setErr
			}
			account.AccountNumber = number
		}

		return account, nil
	}

	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	number, err := uc.freshAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	id := identity.AccountID
	if id == "" {
		id = uc.idGen.Generate()
	}

	now := time.Now().UTC()
	account = &domain.Account{
		ID:            id,
		Name:          identity.Name,
		Email:         strings.ToLower(identity.Email),
		PhotoURL:      identity.PhotoURL,
		AccountNumber: number,
		Balance:       decimal.NewFromInt(StartingBalance),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

func (uc *AccountUseCase) lookup(ctx context.Context, identity domain.Identity) (*domain.Account, error) {
	if identity.AccountID != "" {
		return uc.accountRepo.GetByID(ctx, identity.AccountID)
	}
	return uc.accountRepo.GetByEmail(ctx, identity.Email)
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// freshAccountNumber generates an account number that no existing account
// holds, retrying on collision a bounded number of times.
func (uc *AccountUseCase) freshAccountNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		number := domain.NewAccountNumber()

		_, err := uc.accountRepo.GetByAccountNumber(ctx, number)
		if errors.Is(err, domain.ErrAccountNotFound) {
			return number, nil
		}
		if err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("exhausted %d account number attempts", maxAccountNumberAttempts)
}
