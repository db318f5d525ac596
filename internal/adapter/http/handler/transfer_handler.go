package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paymint/paymint/internal/adapter/http/dto"
	"github.com/paymint/paymint/internal/adapter/http/middleware"
	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/infrastructure/metrics"
)

// TransferHandler handles transfer requests.
type TransferHandler struct {
	transfers TransferService
	metrics   *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transfers TransferService, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transfers: transfers, metrics: m}
}

// Create moves money from the authenticated account to a recipient.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.SendMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Recipient == "" {
		writeError(w, http.StatusBadRequest, "missing recipient", "recipient is required")
		return
	}

	txn, err := h.transfers.SendMoney(r.Context(), req.ToUseCaseInput(identity.AccountID))
	if err != nil {
		h.metrics.TransferErrors.WithLabelValues(transferErrorReason(err)).Inc()
		writeError(w, mapDomainError(err), "transfer rejected", err.Error())
		return
	}

	h.metrics.TransfersCreated.Inc()
	h.metrics.TransferAmount.Observe(txn.Amount.InexactFloat64())

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

func transferErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrSelfTransfer):
		return "self_transfer"
	case errors.Is(err, domain.ErrSenderNotFound):
		return "sender_not_found"
	case errors.Is(err, domain.ErrReceiverNotFound):
		return "receiver_not_found"
	default:
		return "internal"
	}
}
