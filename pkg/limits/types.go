package limits

import (
	"errors"
	"fmt"
)

// LimitType identifies which limit policy tier applies to an account.
type LimitType string

const (
	// LimitTypeNewAccount marks an account still inside its initial
	// probation period, eligible for a limit upgrade at seven days.
	LimitTypeNewAccount LimitType = "new_account"

	// LimitTypeEstablished marks an account past the probation period.
	LimitTypeEstablished LimitType = "established"
)

// Valid reports whether the limit type is one of the known tiers.
func (t LimitType) Valid() bool {
	return t == LimitTypeNewAccount || t == LimitTypeEstablished
}

// Tier classifies how close an account is to its daily limit.
type Tier string

const (
	// TierOK means spending is comfortably below the limit.
	TierOK Tier = "ok"

	// TierWarning means spending has crossed the warning threshold.
	TierWarning Tier = "warning"

	// TierCritical means spending is at or near the limit.
	TierCritical Tier = "critical"
)

// LimitRecord is the raw limit input for an evaluation.
// It is treated as an immutable snapshot and never modified.
type LimitRecord struct {
	// DailyLimit is the maximum spendable amount in the current day.
	// Must be positive for evaluation to succeed.
	DailyLimit float64 `json:"daily_limit"`

	// LimitType indicates which policy tier applies.
	LimitType LimitType `json:"limit_type"`

	// AccountAgeDays is the number of days since account creation.
	AccountAgeDays int `json:"account_age_days"`
}

// SpendingRecord is the raw spending input for an evaluation.
// It is treated as an immutable snapshot and never modified.
type SpendingRecord struct {
	// TotalSpent is the cumulative spend for the current day.
	TotalSpent float64 `json:"total_spent"`

	// TransactionCount is the number of transactions contributing
	// to TotalSpent.
	TransactionCount int `json:"transaction_count"`
}

// Status contains the derived spending-limit status for an account.
// It is constructed fresh on every evaluation and never mutated.
type Status struct {
	// Remaining is DailyLimit - TotalSpent. Negative when overspent;
	// the view layer treats <= 0 as "limit reached".
	Remaining float64 `json:"remaining"`

	// UsagePercentage is (TotalSpent / DailyLimit) * 100. It is not
	// clamped, so callers can detect overspend (> 100).
	UsagePercentage float64 `json:"usage_percentage"`

	// Tier is the status tier derived from UsagePercentage.
	Tier Tier `json:"tier"`

	// IsNewAccount is true iff the limit type is new_account.
	IsNewAccount bool `json:"is_new_account"`

	// UpgradeEligible is true iff the account is new and still inside
	// the upgrade probation window. UpgradeEligible implies IsNewAccount.
	UpgradeEligible bool `json:"upgrade_eligible"`

	// DaysUntilUpgrade is the number of days until the limit upgrade.
	// Only meaningful when UpgradeEligible is true; zero otherwise.
	DaysUntilUpgrade int `json:"days_until_upgrade"`

	// ApproachingLimit is true when usage has crossed the approaching
	// threshold. This is a separate user-facing warning, independent of
	// the tier boundaries.
	ApproachingLimit bool `json:"approaching_limit"`
}

// Error types for evaluation and data access failures.
var (
	// ErrInvalidLimit is returned when a daily limit is zero or negative,
	// making the usage percentage undefined.
	ErrInvalidLimit = errors.New("invalid daily limit")

	// ErrAccountNotFound is returned when no record exists for an account.
	ErrAccountNotFound = errors.New("account not found")
)

// EvaluationError reports an evaluation that could not be computed,
// carrying the offending limit value for diagnostics.
type EvaluationError struct {
	// DailyLimit is the limit value that failed validation.
	DailyLimit float64

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	return fmt.Sprintf("cannot evaluate spending limit: daily limit %.2f is not positive", e.DailyLimit)
}

// Unwrap returns the underlying error for error wrapping.
func (e *EvaluationError) Unwrap() error {
	return e.Err
}
