package provider

import (
	"context"
	"fmt"
	"time"

	"spendwatch-hq/spendwatch/pkg/limits"
	"spendwatch-hq/spendwatch/pkg/limits/storage"
)

// Provider returns the raw evaluation inputs for an account.
//
// The two fetches are separate operations because they come from separate
// sources in a real deployment (limit configuration vs. the spending
// ledger). Implementations own their timeout and retry policy.
type Provider interface {
	// FetchLimit returns the limit record for an account.
	// Returns limits.ErrAccountNotFound (possibly wrapped) when the
	// account does not exist.
	FetchLimit(ctx context.Context, account string) (*limits.LimitRecord, error)

	// FetchSpending returns the spending record for an account.
	// Returns limits.ErrAccountNotFound (possibly wrapped) when the
	// account does not exist.
	FetchSpending(ctx context.Context, account string) (*limits.SpendingRecord, error)
}

// StoreProvider implements Provider on top of a storage.Backend.
// Account age is derived from the stored creation time at fetch time.
type StoreProvider struct {
	backend storage.Backend

	// now is stubbed in tests.
	now func() time.Time
}

// NewStoreProvider creates a Provider backed by the given storage backend.
func NewStoreProvider(backend storage.Backend) *StoreProvider {
	return &StoreProvider{
		backend: backend,
		now:     time.Now,
	}
}

// FetchLimit returns the limit record for an account.
func (p *StoreProvider) FetchLimit(ctx context.Context, account string) (*limits.LimitRecord, error) {
	state, err := p.backend.LoadAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("fetch limit record: %w", err)
	}
	if state == nil {
		return nil, fmt.Errorf("fetch limit record for %q: %w", account, limits.ErrAccountNotFound)
	}

	record := state.LimitRecord(p.now())
	return &record, nil
}

// FetchSpending returns the spending record for an account.
func (p *StoreProvider) FetchSpending(ctx context.Context, account string) (*limits.SpendingRecord, error) {
	state, err := p.backend.LoadAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("fetch spending record: %w", err)
	}
	if state == nil {
		return nil, fmt.Errorf("fetch spending record for %q: %w", account, limits.ErrAccountNotFound)
	}

	spending := state.Spending
	return &spending, nil
}
