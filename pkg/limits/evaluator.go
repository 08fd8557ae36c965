package limits

// Policy contains the tunable constants of the limit evaluation.
//
// The thresholds are percentages of the daily limit. They are configuration,
// not algorithm: changing them never changes the shape of the derivation.
// Note that ApproachingThreshold is deliberately distinct from
// WarningThreshold - "approaching limit" is a separate user-facing warning
// that fires later than the warning tier.
type Policy struct {
	// CriticalThreshold is the usage percentage at which the tier
	// becomes critical.
	CriticalThreshold float64

	// WarningThreshold is the usage percentage at which the tier
	// becomes warning.
	WarningThreshold float64

	// ApproachingThreshold is the usage percentage at which the
	// approaching-limit flag fires.
	ApproachingThreshold float64

	// UpgradeAgeDays is the account age at which a new account
	// receives its upgraded limit.
	UpgradeAgeDays int

	// UpgradedLimit is the daily limit a new account is promoted to
	// once it reaches UpgradeAgeDays. It is shown to new accounts as
	// the target ceiling and applied by the rollover scheduler.
	UpgradedLimit float64
}

// DefaultPolicy returns the standard evaluation policy.
func DefaultPolicy() Policy {
	return Policy{
		CriticalThreshold:    90,
		WarningThreshold:     70,
		ApproachingThreshold: 80,
		UpgradeAgeDays:       7,
		UpgradedLimit:        5000,
	}
}

// Evaluate derives the spending-limit status from a limit record and a
// spending record.
//
// Evaluate is pure: it reads both records as a snapshot, mutates nothing,
// and performs no I/O. Remaining and UsagePercentage are computed exactly,
// with no rounding or clamping - display-time rounding and progress-bar
// clamping belong to the view layer.
//
// A zero or negative DailyLimit makes the usage percentage undefined, so
// Evaluate returns an *EvaluationError wrapping ErrInvalidLimit instead of
// propagating NaN or Inf into display logic.
func (p Policy) Evaluate(limit LimitRecord, spending SpendingRecord) (*Status, error) {
	if limit.DailyLimit <= 0 {
		return nil, &EvaluationError{DailyLimit: limit.DailyLimit, Err: ErrInvalidLimit}
	}

	usage := spending.TotalSpent / limit.DailyLimit * 100

	status := &Status{
		Remaining:        limit.DailyLimit - spending.TotalSpent,
		UsagePercentage:  usage,
		Tier:             p.TierFor(usage),
		IsNewAccount:     limit.LimitType == LimitTypeNewAccount,
		ApproachingLimit: usage >= p.ApproachingThreshold,
	}

	status.UpgradeEligible = status.IsNewAccount && limit.AccountAgeDays < p.UpgradeAgeDays
	if status.UpgradeEligible {
		status.DaysUntilUpgrade = p.UpgradeAgeDays - limit.AccountAgeDays
	}

	return status, nil
}

// TierFor maps a usage percentage to its status tier.
// This is a total function: every percentage maps to exactly one tier.
func (p Policy) TierFor(usagePercentage float64) Tier {
	switch {
	case usagePercentage >= p.CriticalThreshold:
		return TierCritical
	case usagePercentage >= p.WarningThreshold:
		return TierWarning
	default:
		return TierOK
	}
}
