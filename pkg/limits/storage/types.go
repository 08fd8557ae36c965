package storage

import (
	"context"
	"time"

	"spendwatch-hq/spendwatch/pkg/limits"
)

// Backend defines the interface for account state persistence.
// Implementations must be thread-safe and support concurrent access.
type Backend interface {
	// SaveAccount persists the state for an account, creating or
	// replacing it. Returns an error on failure.
	SaveAccount(ctx context.Context, state *AccountState) error

	// LoadAccount retrieves the state for an account.
	// Returns nil if no state exists. Returns an error on system failure.
	LoadAccount(ctx context.Context, account string) (*AccountState, error)

	// RecordSpend atomically adds amount to the account's total spent
	// and increments its transaction count. Returns
	// limits.ErrAccountNotFound for an unknown account.
	RecordSpend(ctx context.Context, account string, amount float64) error

	// ResetSpending zeroes the spending record of every account,
	// starting a new day. Returns the number of accounts reset.
	ResetSpending(ctx context.Context) (int, error)

	// PromoteAccounts upgrades every new account that has reached
	// upgradeAgeDays of age: its limit type becomes established and its
	// daily limit is raised to upgradedLimit. Returns the number of
	// accounts promoted.
	PromoteAccounts(ctx context.Context, upgradeAgeDays int, upgradedLimit float64) (int, error)

	// ListAccounts returns the state of every stored account.
	ListAccounts(ctx context.Context) ([]*AccountState, error)

	// Close releases any resources held by the backend.
	// The backend must not be used after Close.
	Close() error
}

// AccountState is the persisted state for a single account: the configured
// limit and the running spending record for the current day.
type AccountState struct {
	// Account is the account identifier.
	Account string

	// DailyLimit is the configured maximum spend for one day.
	DailyLimit float64

	// LimitType is the policy tier the account is on.
	LimitType limits.LimitType

	// Spending is the running spending record for the current day.
	Spending limits.SpendingRecord

	// CreatedAt is when the account was first stored. Account age is
	// derived from it at evaluation time.
	CreatedAt time.Time

	// LastUpdated is when this state was last modified.
	LastUpdated time.Time
}

// AgeDays returns the account age in whole days at the given time.
// It never returns a negative value.
func (s *AccountState) AgeDays(now time.Time) int {
	if s.CreatedAt.IsZero() || now.Before(s.CreatedAt) {
		return 0
	}
	return int(now.Sub(s.CreatedAt).Hours() / 24)
}

// LimitRecord builds the evaluation input snapshot from the stored state.
func (s *AccountState) LimitRecord(now time.Time) limits.LimitRecord {
	return limits.LimitRecord{
		DailyLimit:     s.DailyLimit,
		LimitType:      s.LimitType,
		AccountAgeDays: s.AgeDays(now),
	}
}
