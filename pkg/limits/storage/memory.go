package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"spendwatch-hq/spendwatch/pkg/limits"
)

// MemoryBackend implements Backend using in-memory storage.
// This is the default backend and provides fast access with no persistence.
// All data is lost when the process exits.
//
// MemoryBackend is thread-safe and supports concurrent access using sync.RWMutex.
type MemoryBackend struct {
	// states maps account identifier to account state.
	states map[string]*AccountState

	// mu protects access to states.
	mu sync.RWMutex
}

// NewMemoryBackend creates a new in-memory storage backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		states: make(map[string]*AccountState),
	}
}

// SaveAccount persists the state for an account.
func (m *MemoryBackend) SaveAccount(ctx context.Context, state *AccountState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Account == "" {
		return fmt.Errorf("account cannot be empty")
	}
	if !state.LimitType.Valid() {
		return fmt.Errorf("unknown limit type %q", state.LimitType)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	state.LastUpdated = now

	stored := *state
	m.states[state.Account] = &stored

	return nil
}

// LoadAccount retrieves the state for an account.
func (m *MemoryBackend) LoadAccount(ctx context.Context, account string) (*AccountState, error) {
	if account == "" {
		return nil, fmt.Errorf("account cannot be empty")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	state, exists := m.states[account]
	if !exists {
		return nil, nil
	}

	// Return a copy so callers cannot mutate stored state.
	copied := *state
	return &copied, nil
}

// RecordSpend atomically adds spending to an account.
func (m *MemoryBackend) RecordSpend(ctx context.Context, account string, amount float64) error {
	if account == "" {
		return fmt.Errorf("account cannot be empty")
	}
	if amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	state, exists := m.states[account]
	if !exists {
		return fmt.Errorf("record spend for %q: %w", account, limits.ErrAccountNotFound)
	}

	state.Spending.TotalSpent += amount
	state.Spending.TransactionCount++
	state.LastUpdated = time.Now()

	return nil
}

// ResetSpending zeroes the spending record of every account.
func (m *MemoryBackend) ResetSpending(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	reset := 0
	for _, state := range m.states {
		if state.Spending != (limits.SpendingRecord{}) {
			state.Spending = limits.SpendingRecord{}
			state.LastUpdated = now
			reset++
		}
	}

	return reset, nil
}

// PromoteAccounts upgrades new accounts that have reached the upgrade age.
func (m *MemoryBackend) PromoteAccounts(ctx context.Context, upgradeAgeDays int, upgradedLimit float64) (int, error) {
	if upgradedLimit <= 0 {
		return 0, fmt.Errorf("upgraded limit must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	promoted := 0
	for _, state := range m.states {
		if state.LimitType != limits.LimitTypeNewAccount {
			continue
		}
		if state.AgeDays(now) < upgradeAgeDays {
			continue
		}
		state.LimitType = limits.LimitTypeEstablished
		state.DailyLimit = upgradedLimit
		state.LastUpdated = now
		promoted++
	}

	return promoted, nil
}

// ListAccounts returns the state of every stored account.
func (m *MemoryBackend) ListAccounts(ctx context.Context) ([]*AccountState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]*AccountState, 0, len(m.states))
	for _, state := range m.states {
		copied := *state
		states = append(states, &copied)
	}

	return states, nil
}

// Close releases any resources held by the backend.
func (m *MemoryBackend) Close() error {
	return nil
}

// Size returns the current number of stored accounts.
// This is useful for monitoring and testing.
func (m *MemoryBackend) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}
