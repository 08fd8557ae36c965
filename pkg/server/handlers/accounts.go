package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"spendwatch-hq/spendwatch/pkg/limits"
	"spendwatch-hq/spendwatch/pkg/limits/storage"
)

// AccountsHandler manages account state: creation, spend recording, and
// listing.
type AccountsHandler struct {
	backend storage.Backend

	// now is stubbed in tests.
	now func() time.Time
}

// NewAccountsHandler creates an account management handler.
func NewAccountsHandler(backend storage.Backend) *AccountsHandler {
	return &AccountsHandler{
		backend: backend,
		now:     time.Now,
	}
}

// Create handles PUT /v1/accounts/{account}.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")
	if account == "" {
		writeError(w, http.StatusBadRequest, "account is required")
		return
	}

	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.DailyLimit <= 0 {
		writeError(w, http.StatusBadRequest, "daily_limit must be positive")
		return
	}
	if req.LimitType == "" {
		req.LimitType = limits.LimitTypeNewAccount
	}
	if !req.LimitType.Valid() {
		writeError(w, http.StatusBadRequest, "limit_type must be new_account or established")
		return
	}

	now := h.now()
	state := &storage.AccountState{
		Account:     account,
		DailyLimit:  req.DailyLimit,
		LimitType:   req.LimitType,
		CreatedAt:   now,
		LastUpdated: now,
	}

	// Creation must not reset the age clock of an existing account.
	existing, err := h.backend.LoadAccount(r.Context(), account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}
	created := existing == nil
	if existing != nil {
		state.CreatedAt = existing.CreatedAt
		state.Spending = existing.Spending
	}

	if err := h.backend.SaveAccount(r.Context(), state); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save account")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, summarize(state, h.now()))
}

// Spend handles POST /v1/accounts/{account}/spend.
func (h *AccountsHandler) Spend(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")
	if account == "" {
		writeError(w, http.StatusBadRequest, "account is required")
		return
	}

	var req SpendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	if err := h.backend.RecordSpend(r.Context(), account, req.Amount); err != nil {
		if errors.Is(err, limits.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "account not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to record spend")
		return
	}

	state, err := h.backend.LoadAccount(r.Context(), account)
	if err != nil || state == nil {
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}

	writeJSON(w, http.StatusOK, summarize(state, h.now()))
}

// List handles GET /v1/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	states, err := h.backend.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts")
		return
	}

	now := h.now()
	summaries := make([]AccountSummary, 0, len(states))
	for _, state := range states {
		summaries = append(summaries, summarize(state, now))
	}

	writeJSON(w, http.StatusOK, map[string]any{"accounts": summaries})
}

// summarize converts stored state into its list representation.
func summarize(state *storage.AccountState, now time.Time) AccountSummary {
	return AccountSummary{
		Account:          state.Account,
		DailyLimit:       state.DailyLimit,
		LimitType:        state.LimitType,
		TotalSpent:       state.Spending.TotalSpent,
		TransactionCount: state.Spending.TransactionCount,
		AccountAgeDays:   state.AgeDays(now),
	}
}
