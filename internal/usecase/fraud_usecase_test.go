package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/usecase"
	"github.com/paymint/paymint/internal/usecase/mocks"
)

func seedReportedTransaction(t *testing.T, ledgerRepo *mocks.FakeLedgerRepository) *domain.Transaction {
	t.Helper()

	txn := &domain.Transaction{
		ID:          "txn-1",
		From:        domain.Party{AccountID: "acc-1", Name: "John Doe"},
		To:          domain.Party{AccountID: "acc-2", Name: "Jane Smith"},
		Amount:      decimal.NewFromInt(250),
		Status:      domain.StatusCompleted,
		Description: "Coffee supplies",
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	ledgerRepo.Create(context.Background(), nil, txn)

	return txn
}

func TestFraudUseCase_ReportFraud(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerRepo := mocks.NewFakeLedgerRepository()
	seedReportedTransaction(t, ledgerRepo)

	evaluator := mocks.NewMockFraudEvaluator(ctrl)

	// Exactly one evaluator invocation, fed with the rendered summary and
	// the verbatim user narrative.
	evaluator.EXPECT().
		Evaluate(gomock.Any(), gomock.Any(), "I never sent this").
		DoAndReturn(func(_ context.Context, summary, _ string) (*domain.FraudVerdict, error) {
			for _, want := range []string{"Amount: 250", "Jane Smith", "John Doe", "Coffee supplies"} {
				if !strings.Contains(summary, want) {
					t.Errorf("summary missing %q: %s", want, summary)
				}
			}
			return &domain.FraudVerdict{Fraudulent: true, Reason: "pattern matches known scam"}, nil
		}).
		Times(1)

	uc := usecase.NewFraudUseCase(ledgerRepo, evaluator, nil, 0)

	verdict, err := uc.ReportFraud(context.Background(), "txn-1", "I never sent this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !verdict.Fraudulent {
		t.Error("expected fraudulent verdict")
	}

	stored, _ := ledgerRepo.GetByID(context.Background(), "txn-1")
	if !stored.FraudReported {
		t.Error("expected transaction flagged as fraud")
	}
	if stored.FraudReason == nil || *stored.FraudReason != "pattern matches known scam" {
		t.Errorf("expected verbatim reason stored, got %v", stored.FraudReason)
	}
}

func TestFraudUseCase_ReportFraud_TransactionNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	evaluator := mocks.NewMockFraudEvaluator(ctrl)
	// The evaluator must never be reached.
	evaluator.EXPECT().Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	uc := usecase.NewFraudUseCase(mocks.NewFakeLedgerRepository(), evaluator, nil, 0)

	_, err := uc.ReportFraud(context.Background(), "txn-404", "report")
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestFraudUseCase_ReportFraud_EvaluatorFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerRepo := mocks.NewFakeLedgerRepository()
	seedReportedTransaction(t, ledgerRepo)

	evaluator := mocks.NewMockFraudEvaluator(ctrl)
	evaluator.EXPECT().
		Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("model timeout")).
		Times(1)

	uc := usecase.NewFraudUseCase(ledgerRepo, evaluator, nil, 0)

	_, err := uc.ReportFraud(context.Background(), "txn-1", "report")
	if !errors.Is(err, domain.ErrEvaluationFailed) {
		t.Fatalf("expected ErrEvaluationFailed, got %v", err)
	}

	// The ledger must be untouched on evaluator failure.
	stored, _ := ledgerRepo.GetByID(context.Background(), "txn-1")
	if stored.FraudReported || stored.FraudReason != nil {
		t.Error("ledger mutated despite evaluator failure")
	}
}

func TestFraudUseCase_ReportFraud_BoundsEvaluatorCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledgerRepo := mocks.NewFakeLedgerRepository()
	seedReportedTransaction(t, ledgerRepo)

	evaluator := mocks.NewMockFraudEvaluator(ctrl)
	evaluator.EXPECT().
		Evaluate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string) (*domain.FraudVerdict, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected a deadline on the evaluator context")
			}
			return &domain.FraudVerdict{Fraudulent: false, Reason: "looks legitimate"}, nil
		})

	uc := usecase.NewFraudUseCase(ledgerRepo, evaluator, nil, 5*time.Second)

	verdict, err := uc.ReportFraud(context.Background(), "txn-1", "report")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The reason is persisted regardless of the boolean verdict.
	stored, _ := ledgerRepo.GetByID(context.Background(), "txn-1")
	if !stored.FraudReported || stored.FraudReason == nil || *stored.FraudReason != verdict.Reason {
		t.Errorf("expected reason %q persisted, got %+v", verdict.Reason, stored)
	}
}
