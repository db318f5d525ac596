package domain

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// AccountNumberAlphabet is the character set account numbers are drawn from.
const AccountNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AccountNumberLength is the fixed length of an account number.
const AccountNumberLength = 6

// Account is a user's balance-holding identity record.
type Account struct {
	ID            string
	Name          string
	Email         string
	PhotoURL      string
	AccountNumber string
	Balance       decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateDebit checks whether the account can be debited by amount
// without going negative.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// Party returns the immutable identity snapshot recorded on transactions.
func (a *Account) Party() Party {
	return Party{
		AccountID: a.ID,
		Name:      a.Name,
		Email:     a.Email,
	}
}

// NewAccountNumber draws AccountNumberLength characters independently and
// uniformly from AccountNumberAlphabet. Uniqueness is the caller's job.
func NewAccountNumber() string {
	alphabetSize := big.NewInt(int64(len(AccountNumberAlphabet)))

	buf := make([]byte, AccountNumberLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand only fails when the platform entropy source is
			// broken, at which point the process cannot do anything useful.
			panic(err)
		}
		buf[i] = AccountNumberAlphabet[n.Int64()]
	}

	return string(buf)
}
