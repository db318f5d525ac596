package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/paymint/paymint/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrTransactionNotFound, http.StatusNotFound},
		{domain.ErrInvalidAmount, http.StatusBadRequest},
		{domain.ErrSelfTransfer, http.StatusBadRequest},
		{domain.ErrSenderNotFound, http.StatusUnprocessableEntity},
		{domain.ErrReceiverNotFound, http.StatusUnprocessableEntity},
		{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{domain.ErrEvaluationFailed, http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Fatalf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestMapDomainErrorUnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: model unreachable", domain.ErrEvaluationFailed)

	if got := mapDomainError(wrapped); got != http.StatusBadGateway {
		t.Fatalf("expected 502 for wrapped evaluation error, got %d", got)
	}
}
