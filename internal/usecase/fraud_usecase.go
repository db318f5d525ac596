package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/paymint/paymint/internal/domain"
)

// FraudUseCase handles the fraud-report workflow.
type FraudUseCase struct {
	ledgerRepo LedgerRepository
	evaluator  FraudEvaluator
	cache      Cache
	timeout    time.Duration
}

// NewFraudUseCase creates a new FraudUseCase. cache may be nil; a
// non-positive timeout falls back to DefaultEvaluatorTimeout.
func NewFraudUseCase(ledgerRepo LedgerRepository, evaluator FraudEvaluator, cache Cache, timeout time.Duration) *FraudUseCase {
	if timeout <= 0 {
		timeout = DefaultEvaluatorTimeout
	}

	return &FraudUseCase{
		ledgerRepo: ledgerRepo,
		evaluator:  evaluator,
		cache:      cache,
		timeout:    timeout,
	}
}

// ReportFraud loads a transaction, asks the external evaluator for a
// verdict, and persists the verdict's reason onto the transaction. The
// evaluator call is bounded by the configured timeout and runs with no
// store lock held; an evaluator failure leaves the ledger untouched.
func (uc *FraudUseCase) ReportFraud(ctx context.Context, transactionID, userReport string) (*domain.FraudVerdict, error) {
	txn, err := uc.ledgerRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	evalCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	verdict, err := uc.evaluator.Evaluate(evalCtx, summarize(txn), userReport)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEvaluationFailed, err)
	}

	if err := uc.ledgerRepo.MarkFraudulent(ctx, txn.ID, verdict.Reason); err != nil {
		return nil, err
	}

	invalidateHistory(ctx, uc.cache, txn.From.AccountID, txn.To.AccountID)

	return verdict, nil
}

// summarize renders a transaction into the textual form the evaluator is
// prompted with.
func summarize(txn *domain.Transaction) string {
	return fmt.Sprintf("Amount: %s, To: %s, From: %s, Date: %s, Description: %s",
		txn.Amount.String(),
		txn.To.Name,
		txn.From.Name,
		txn.CreatedAt.Format(time.RFC3339),
		txn.Description,
	)
}
