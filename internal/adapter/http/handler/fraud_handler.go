package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paymint/paymint/internal/adapter/http/dto"
	"github.com/paymint/paymint/internal/adapter/http/middleware"
	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/infrastructure/metrics"
)

// FraudHandler handles fraud report requests.
type FraudHandler struct {
	ledger  LedgerService
	fraud   FraudService
	metrics *metrics.Metrics
}

// NewFraudHandler creates a new FraudHandler.
func NewFraudHandler(ledger LedgerService, fraud FraudService, m *metrics.Metrics) *FraudHandler {
	return &FraudHandler{ledger: ledger, fraud: fraud, metrics: m}
}

// Report runs the fraud analysis for a transaction the caller
// participates in and returns the verdict.
func (h *FraudHandler) Report(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	var req dto.FraudReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Report == "" {
		writeError(w, http.StatusBadRequest, "missing report", "report is required")
		return
	}

	txn, err := h.ledger.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load transaction", err.Error())
		return
	}

	if !participates(txn, identity.AccountID) {
		writeError(w, http.StatusNotFound, "failed to load transaction", domain.ErrTransactionNotFound.Error())
		return
	}

	start := time.Now()
	verdict, err := h.fraud.ReportFraud(r.Context(), id, req.Report)
	h.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrEvaluationFailed) {
			h.metrics.EvaluationErrors.Inc()
		}
		writeError(w, mapDomainError(err), "fraud analysis failed", err.Error())
		return
	}

	h.metrics.FraudReports.WithLabelValues(metrics.VerdictLabel(verdict.Fraudulent)).Inc()

	writeJSON(w, http.StatusOK, dto.FraudReportResponse{
		Fraudulent: verdict.Fraudulent,
		Reason:     verdict.Reason,
	})
}
