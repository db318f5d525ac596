package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	PhotoURL      string          `json:"photo_url,omitempty"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		PhotoURL:      a.PhotoURL,
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// SessionResponse is returned by the sign-in endpoint.
type SessionResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account"`
}

// PartyResponse identifies one side of a transaction.
type PartyResponse struct {
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string          `json:"id"`
	From          PartyResponse   `json:"from"`
	To            PartyResponse   `json:"to"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Description   string          `json:"description,omitempty"`
	FraudReported bool            `json:"fraud_reported"`
	FraudReason   *string         `json:"fraud_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		From:          PartyResponse(t.From),
		To:            PartyResponse(t.To),
		Amount:        t.Amount,
		Status:        string(t.Status),
		Description:   t.Description,
		FraudReported: t.FraudReported,
		FraudReason:   t.FraudReason,
		CreatedAt:     t.CreatedAt,
	}
}

// HistoryEntryResponse is a transaction annotated with the requesting
// account's side of it.
type HistoryEntryResponse struct {
	TransactionResponse

	Direction string `json:"direction"`
}

// HistoryFromDomain converts annotated history entries to responses.
func HistoryFromDomain(entries []domain.HistoryEntry) []*HistoryEntryResponse {
	result := make([]*HistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &HistoryEntryResponse{
			TransactionResponse: *TransactionFromDomain(e.Transaction),
			Direction:           string(e.Direction),
		}
	}
	return result
}

// FraudReportResponse is the verdict returned by the analysis endpoint.
type FraudReportResponse struct {
	Fraudulent bool   `json:"fraudulent"`
	Reason     string `json:"reason"`
}
