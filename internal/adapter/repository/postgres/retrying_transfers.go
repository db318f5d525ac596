package postgres

import (
	"context"

	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/usecase"
)

// TransferService is the subset of the transfer use case the decorator wraps.
type TransferService interface {
	SendMoney(ctx context.Context, input usecase.SendMoneyInput) (*domain.Transaction, error)
}

// RetryingTransferService re-runs transfers that abort with a deadlock or
// serialization failure. Transfers are safe to re-run: nothing is written
// until the wrapped use case commits.
type RetryingTransferService struct {
	inner   TransferService
	retrier *Retrier
}

// NewRetryingTransferService wraps a transfer service with retry handling.
func NewRetryingTransferService(inner TransferService, retrier *Retrier) *RetryingTransferService {
	return &RetryingTransferService{inner: inner, retrier: retrier}
}

// SendMoney executes a transfer, retrying on transient database errors.
func (s *RetryingTransferService) SendMoney(ctx context.Context, input usecase.SendMoneyInput) (*domain.Transaction, error) {
	var txn *domain.Transaction

	err := s.retrier.Retry(ctx, func() error {
		var err error
		txn, err = s.inner.SendMoney(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}
