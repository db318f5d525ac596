package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

const transactionColumns = `id, from_account_id, from_name, from_email,
	to_account_id, to_name, to_email,
	amount, status, description, fraud_reported, fraud_reason, created_at`

// Create appends a transaction record inside a transaction.
func (r *LedgerRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.From.AccountID,
		txn.From.Name,
		txn.From.Email,
		txn.To.AccountID,
		txn.To.Name,
		txn.To.Email,
		decimalToNumeric(txn.Amount),
		string(txn.Status),
		txn.Description,
		txn.FraudReported,
		txn.FraudReason,
		txn.CreatedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *LedgerRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// ListByAccount retrieves all transactions an account participates in,
// newest first.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txns := make([]*domain.Transaction, 0)
	for rows.Next() {
		txn, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

// MarkFraudulent flags a transaction and stores the analysis reason.
// The flag never clears; a later report may overwrite the reason.
func (r *LedgerRepository) MarkFraudulent(ctx context.Context, id, reason string) error {
	query := `UPDATE transactions SET fraud_reported = TRUE, fraud_reason = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, reason)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

func (r *LedgerRepository) scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		txn    domain.Transaction
		amount pgtype.Numeric
		status string
	)

	err := row.Scan(
		&txn.ID,
		&txn.From.AccountID,
		&txn.From.Name,
		&txn.From.Email,
		&txn.To.AccountID,
		&txn.To.Name,
		&txn.To.Email,
		&amount,
		&status,
		&txn.Description,
		&txn.FraudReported,
		&txn.FraudReason,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn.Amount = numericToDecimal(amount)
	txn.Status = domain.TransactionStatus(status)

	return &txn, nil
}
