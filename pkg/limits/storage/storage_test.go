package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"spendwatch-hq/spendwatch/pkg/limits"
)

// backendFactories builds each backend implementation for the shared tests.
func backendFactories(t *testing.T) map[string]func(t *testing.T) Backend {
	return map[string]func(t *testing.T) Backend{
		"memory": func(t *testing.T) Backend {
			return NewMemoryBackend()
		},
		"sqlite": func(t *testing.T) Backend {
			backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "accounts.db"))
			if err != nil {
				t.Fatalf("Failed to create sqlite backend: %v", err)
			}
			return backend
		},
	}
}

func TestBackend_SaveAndLoad(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			backend := factory(t)
			defer backend.Close()

			ctx := context.Background()
			state := &AccountState{
				Account:    "acct-1",
				DailyLimit: 1000,
				LimitType:  limits.LimitTypeEstablished,
				Spending:   limits.SpendingRecord{TotalSpent: 250, TransactionCount: 3},
			}

			if err := backend.SaveAccount(ctx, state); err != nil {
				t.Fatalf("SaveAccount failed: %v", err)
			}

			loaded, err := backend.LoadAccount(ctx, "acct-1")
			if err != nil {
				t.Fatalf("LoadAccount failed: %v", err)
			}
			if loaded == nil {
				t.Fatal("Expected account state, got nil")
			}
			if loaded.DailyLimit != 1000 {
				t.Errorf("Expected daily limit 1000, got %v", loaded.DailyLimit)
			}
			if loaded.LimitType != limits.LimitTypeEstablished {
				t.Errorf("Expected established, got %s", loaded.LimitType)
			}
			if loaded.Spending.TotalSpent != 250 || loaded.Spending.TransactionCount != 3 {
				t.Errorf("Unexpected spending record: %+v", loaded.Spending)
			}
			if loaded.CreatedAt.IsZero() {
				t.Error("Expected CreatedAt to be set")
			}
		})
	}
}

func TestBackend_LoadUnknownAccount(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			backend := factory(t)
			defer backend.Close()

			loaded, err := backend.LoadAccount(context.Background(), "missing")
			if err != nil {
				t.Fatalf("LoadAccount failed: %v", err)
			}
			if loaded != nil {
				t.Errorf("Expected nil for unknown account, got %+v", loaded)
			}
		})
	}
}

func TestBackend_SaveValidation(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			backend := factory(t)
			defer backend.Close()

			ctx := context.Background()

			if err := backend.SaveAccount(ctx, nil); err == nil {
				t.Error("Expected error for nil state")
			}
			if err := backend.SaveAccount(ctx, &AccountState{LimitType: limits.LimitTypeEstablished}); err == nil {
				t.Error("Expected error for empty account")
			}
			if err := backend.SaveAccount(ctx, &AccountState{Account: "a", LimitType: "gold"}); err == nil {
				t.Error("Expected error for unknown limit type")
			}
		})
	}
}

func TestBackend_RecordSpend(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			backend := factory(t)
			defer backend.Close()

			ctx := context.Background()
			state := &AccountState{
				Account:    "spender",
				DailyLimit: 500,
				LimitType:  limits.LimitTypeNewAccount,
			}
			if err := backend.SaveAccount(ctx, state); err != nil {
				t.Fatalf("SaveAccount failed: %v", err)
			}

			if err := backend.RecordSpend(ctx, "spender", 75.25); err != nil {
				t.Fatalf("RecordSpend failed: %v", err)
			}
			if err := backend.RecordSpend(ctx, "spender", 24.75); err != nil {
				t.Fatalf("RecordSpend failed: %v", err)
			}

			loaded, err := backend.LoadAccount(ctx, "spender")
			if err != nil {
				t.Fatalf("LoadAccount failed: %v", err)
			}
			if loaded.Spending.TotalSpent != 100 {
				t.Errorf("Expected total spent 100, got %v", loaded.Spending.TotalSpent)
			}
			if loaded.Spending.TransactionCount != 2 {
				t.Errorf("Expected 2 transactions, got %d", loaded.Spending.TransactionCount)
			}
		})
	}
}

func TestBackend_RecordSpendUnknownAccount(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			backend := factory(t)
			defer backend.Close()

			err := backend.RecordSpend(context.Background(), "nobody", 10)
			if err == nil {
				t.Fatal("Expected error for unknown account")
			}
			if !errors.Is(err, limits.ErrAccountNotFound) {
				t.Errorf("Expected ErrAccountNotFound, got %v", err)
			}
		})
	}
}

func TestBackend_ResetSpending(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			backend := factory(t)
			defer backend.Close()

			ctx := context.Background()
			for _, account := range []string{"a", "b", "c"} {
				state := &AccountState{
					Account:    account,
					DailyLimit: 100,
					LimitType:  limits.LimitTypeEstablished,
				}
				if err := backend.SaveAccount(ctx, state); err != nil {
					t.Fatalf("SaveAccount failed: %v", err)
				}
			}
			// Two accounts spend, one stays untouched.
			if err := backend.RecordSpend(ctx, "a", 40); err != nil {
				t.Fatalf("RecordSpend failed: %v", err)
			}
			if err := backend.RecordSpend(ctx, "b", 90); err != nil {
				t.Fatalf("RecordSpend failed: %v", err)
			}

			reset, err := backend.ResetSpending(ctx)
			if err != nil {
				t.Fatalf("ResetSpending failed: %v", err)
			}
			if reset != 2 {
				t.Errorf("Expected 2 accounts reset, got %d", reset)
			}

			for _, account := range []string{"a", "b", "c"} {
				loaded, err := backend.LoadAccount(ctx, account)
				if err != nil {
					t.Fatalf("LoadAccount failed: %v", err)
				}
				if loaded.Spending.TotalSpent != 0 || loaded.Spending.TransactionCount != 0 {
					t.Errorf("Account %s not reset: %+v", account, loaded.Spending)
				}
			}
		})
	}
}

func TestBackend_PromoteAccounts(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			backend := factory(t)
			defer backend.Close()

			ctx := context.Background()
			now := time.Now()

			// Old enough to promote.
			if err := backend.SaveAccount(ctx, &AccountState{
				Account:    "aged",
				DailyLimit: 500,
				LimitType:  limits.LimitTypeNewAccount,
				CreatedAt:  now.Add(-8 * 24 * time.Hour),
			}); err != nil {
				t.Fatalf("SaveAccount failed: %v", err)
			}

			// Still inside the probation window.
			if err := backend.SaveAccount(ctx, &AccountState{
				Account:    "young",
				DailyLimit: 500,
				LimitType:  limits.LimitTypeNewAccount,
				CreatedAt:  now.Add(-2 * 24 * time.Hour),
			}); err != nil {
				t.Fatalf("SaveAccount failed: %v", err)
			}

			// Already established, must be untouched.
			if err := backend.SaveAccount(ctx, &AccountState{
				Account:    "veteran",
				DailyLimit: 2000,
				LimitType:  limits.LimitTypeEstablished,
				CreatedAt:  now.Add(-100 * 24 * time.Hour),
			}); err != nil {
				t.Fatalf("SaveAccount failed: %v", err)
			}

			promoted, err := backend.PromoteAccounts(ctx, 7, 5000)
			if err != nil {
				t.Fatalf("PromoteAccounts failed: %v", err)
			}
			if promoted != 1 {
				t.Errorf("Expected 1 account promoted, got %d", promoted)
			}

			aged, _ := backend.LoadAccount(ctx, "aged")
			if aged.LimitType != limits.LimitTypeEstablished || aged.DailyLimit != 5000 {
				t.Errorf("Expected aged account promoted to 5000, got %s/%v", aged.LimitType, aged.DailyLimit)
			}

			young, _ := backend.LoadAccount(ctx, "young")
			if young.LimitType != limits.LimitTypeNewAccount || young.DailyLimit != 500 {
				t.Errorf("Young account should be untouched, got %s/%v", young.LimitType, young.DailyLimit)
			}

			veteran, _ := backend.LoadAccount(ctx, "veteran")
			if veteran.DailyLimit != 2000 {
				t.Errorf("Veteran account should keep its limit, got %v", veteran.DailyLimit)
			}
		})
	}
}

func TestBackend_ListAccounts(t *testing.T) {
	for name, factory := range backendFactories(t) {
		t.Run(name, func(t *testing.T) {
			backend := factory(t)
			defer backend.Close()

			ctx := context.Background()
			for _, account := range []string{"one", "two"} {
				if err := backend.SaveAccount(ctx, &AccountState{
					Account:    account,
					DailyLimit: 100,
					LimitType:  limits.LimitTypeEstablished,
				}); err != nil {
					t.Fatalf("SaveAccount failed: %v", err)
				}
			}

			states, err := backend.ListAccounts(ctx)
			if err != nil {
				t.Fatalf("ListAccounts failed: %v", err)
			}
			if len(states) != 2 {
				t.Errorf("Expected 2 accounts, got %d", len(states))
			}
		})
	}
}

func TestAccountState_AgeDays(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		createdAt time.Time
		expected  int
	}{
		{"created now", now, 0},
		{"half a day old", now.Add(-12 * time.Hour), 0},
		{"three days old", now.Add(-3*24*time.Hour - time.Hour), 3},
		{"zero created at", time.Time{}, 0},
		{"created in the future", now.Add(24 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &AccountState{CreatedAt: tt.createdAt}
			if got := state.AgeDays(now); got != tt.expected {
				t.Errorf("Expected age %d days, got %d", tt.expected, got)
			}
		})
	}
}

func TestAccountState_LimitRecord(t *testing.T) {
	now := time.Now()
	state := &AccountState{
		Account:    "acct",
		DailyLimit: 750,
		LimitType:  limits.LimitTypeNewAccount,
		CreatedAt:  now.Add(-5 * 24 * time.Hour),
	}

	record := state.LimitRecord(now)
	if record.DailyLimit != 750 {
		t.Errorf("Expected daily limit 750, got %v", record.DailyLimit)
	}
	if record.LimitType != limits.LimitTypeNewAccount {
		t.Errorf("Expected new_account, got %s", record.LimitType)
	}
	if record.AccountAgeDays != 5 {
		t.Errorf("Expected age 5 days, got %d", record.AccountAgeDays)
	}
}
