package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/paymint/paymint/internal/domain"
)

func TestAccountRepositoryCreateStoresColumnsVerbatim(t *testing.T) {
	mockPool := newMockPool(t)

	now := time.Now()
	account := &domain.Account{
		ID:            "acc-1",
		Name:          "Alice",
		Email:         "alice@example.com",
		PhotoURL:      "https://cdn.example.com/Avatars/AbC123.PNG",
		AccountNumber: "AB12CD",
		Balance:       decimal.NewFromInt(1000),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Placeholders bind bare so case-sensitive values such as the photo
	// URL reach the row unchanged.
	mockPool.ExpectExec(`INSERT INTO accounts .+ VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7, \$8\)`).
		WithArgs(
			account.ID,
			account.Name,
			account.Email,
			account.PhotoURL,
			account.AccountNumber,
			pgxmock.AnyArg(),
			account.CreatedAt,
			account.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newAccountRepositoryWithPool(mockPool)
	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryGetByEmailCaseInsensitive(t *testing.T) {
	mockPool := newMockPool(t)

	now := time.Now()
	mockPool.ExpectQuery(`SELECT .+ FROM accounts WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("Alice@Example.COM").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "email", "photo_url", "account_number", "balance", "created_at", "updated_at",
		}).AddRow("acc-1", "Alice", "alice@example.com", "", "AB12CD", decimalToNumeric(decimal.NewFromInt(1000)), now, now))

	repo := newAccountRepositoryWithPool(mockPool)
	account, err := repo.GetByEmail(context.Background(), "Alice@Example.COM")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if account.ID != "acc-1" {
		t.Fatalf("unexpected account: %+v", account)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryGetByIDNotFound(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectQuery(`SELECT .+ FROM accounts WHERE id = \$1`).
		WithArgs("acc-404").
		WillReturnError(pgx.ErrNoRows)

	repo := newAccountRepositoryWithPool(mockPool)
	if _, err := repo.GetByID(context.Background(), "acc-404"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected domain.ErrAccountNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}
