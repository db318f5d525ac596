package dto

import (
	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/usecase"
)

// SessionRequest carries the identity profile presented at sign-in.
type SessionRequest struct {
	AccountID string `json:"account_id,omitempty"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	PhotoURL  string `json:"photo_url,omitempty"`
}

// ToIdentity converts to a domain identity.
func (r *SessionRequest) ToIdentity() domain.Identity {
	return domain.Identity{
		AccountID: r.AccountID,
		Email:     r.Email,
		Name:      r.Name,
		PhotoURL:  r.PhotoURL,
	}
}

// SendMoneyRequest represents a transfer request. Recipient accepts an
// account number, an email address, or an account ID.
type SendMoneyRequest struct {
	Recipient   string          `json:"recipient"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input. The sender comes from the
// authenticated session, never from the request body.
func (r *SendMoneyRequest) ToUseCaseInput(senderID string) usecase.SendMoneyInput {
	return usecase.SendMoneyInput{
		SenderID:    senderID,
		Recipient:   r.Recipient,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// FraudReportRequest carries the reporter's description of the problem.
type FraudReportRequest struct {
	Report string `json:"report"`
}
