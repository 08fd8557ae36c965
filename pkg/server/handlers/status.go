package handlers

import (
	"errors"
	"net/http"

	"spendwatch-hq/spendwatch/pkg/limits"
	"spendwatch-hq/spendwatch/pkg/limits/provider"
)

// StatusHandler serves limit-status snapshots for accounts.
type StatusHandler struct {
	orchestrator *provider.Orchestrator
}

// NewStatusHandler creates a limit-status handler.
func NewStatusHandler(o *provider.Orchestrator) *StatusHandler {
	return &StatusHandler{orchestrator: o}
}

// ServeHTTP handles GET /v1/accounts/{account}/limit-status.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	account := r.PathValue("account")
	if account == "" {
		writeError(w, http.StatusBadRequest, "account is required")
		return
	}

	result := h.orchestrator.Snapshot(r.Context(), account)

	status := http.StatusOK
	if !result.IsReady() {
		switch err := result.Err(); {
		case errors.Is(err, limits.ErrAccountNotFound):
			status = http.StatusNotFound
		case errors.Is(err, limits.ErrInvalidLimit):
			status = http.StatusUnprocessableEntity
		default:
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, result)
}
