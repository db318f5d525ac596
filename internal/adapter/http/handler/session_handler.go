package handler

import (
	"encoding/json"
	"net/http"

	"github.com/paymint/paymint/internal/adapter/http/dto"
	"github.com/paymint/paymint/internal/adapter/http/middleware"
	"github.com/paymint/paymint/internal/domain"
	"github.com/paymint/paymint/internal/infrastructure/metrics"
)

// SessionHandler handles sign-in and profile requests.
type SessionHandler struct {
	accounts AccountService
	issuer   TokenIssuer
	metrics  *metrics.Metrics
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(accounts AccountService, issuer TokenIssuer, m *metrics.Metrics) *SessionHandler {
	return &SessionHandler{accounts: accounts, issuer: issuer, metrics: m}
}

// Create signs an identity in, creating its account on first contact,
// and returns a session token.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing required fields", "email and name are required")
		return
	}

	account, err := h.accounts.RegisterSignIn(r.Context(), req.ToIdentity())
	if err != nil {
		writeError(w, mapDomainError(err), "sign-in failed", err.Error())
		return
	}

	token, err := h.issuer.Issue(domain.Identity{
		AccountID: account.ID,
		Email:     account.Email,
		Name:      account.Name,
		PhotoURL:  account.PhotoURL,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	h.metrics.SignIns.Inc()
	// A freshly created account carries identical timestamps.
	if account.CreatedAt.Equal(account.UpdatedAt) {
		h.metrics.AccountsCreated.Inc()
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{
		Token:   token,
		Account: dto.AccountFromDomain(account),
	})
}

// Me returns the authenticated caller's account.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), identity.AccountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
