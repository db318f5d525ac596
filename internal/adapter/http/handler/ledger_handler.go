package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paymint/paymint/internal/adapter/http/dto"
	"github.com/paymint/paymint/internal/adapter/http/middleware"
	"github.com/paymint/paymint/internal/domain"
)

// LedgerHandler handles transaction read requests.
type LedgerHandler struct {
	ledger LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// History lists the authenticated account's transactions, newest first.
func (h *LedgerHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entries, err := h.ledger.History(r.Context(), identity.AccountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(entries))
}

// Get retrieves one transaction. Accounts only see transactions they
// participate in; anything else reads as not found.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	txn, err := h.ledger.GetTransaction(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load transaction", err.Error())
		return
	}

	if !participates(txn, identity.AccountID) {
		writeError(w, http.StatusNotFound, "failed to load transaction", domain.ErrTransactionNotFound.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

func participates(txn *domain.Transaction, accountID string) bool {
	return txn.From.AccountID == accountID || txn.To.AccountID == accountID
}
