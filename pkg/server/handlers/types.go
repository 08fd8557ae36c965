package handlers

import (
	"encoding/json"
	"net/http"

	"spendwatch-hq/spendwatch/pkg/limits"
)

// CreateAccountRequest is the body for account creation.
type CreateAccountRequest struct {
	// DailyLimit is the configured maximum spend for one day.
	DailyLimit float64 `json:"daily_limit"`

	// LimitType is the policy tier, "new_account" or "established".
	// Defaults to "new_account" when omitted.
	LimitType limits.LimitType `json:"limit_type,omitempty"`
}

// SpendRequest is the body for recording a spend event.
type SpendRequest struct {
	// Amount is the spend amount, must be positive.
	Amount float64 `json:"amount"`
}

// AccountSummary is the list representation of a stored account.
type AccountSummary struct {
	Account          string           `json:"account"`
	DailyLimit       float64          `json:"daily_limit"`
	LimitType        limits.LimitType `json:"limit_type"`
	TotalSpent       float64          `json:"total_spent"`
	TransactionCount int              `json:"transaction_count"`
	AccountAgeDays   int              `json:"account_age_days"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
