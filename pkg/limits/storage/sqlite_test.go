package storage

import (
	"context"
	"path/filepath"
	"testing"

	"spendwatch-hq/spendwatch/pkg/limits"
)

func TestSQLiteBackend_RequiresPath(t *testing.T) {
	if _, err := NewSQLiteBackendWithConfig(SQLiteBackendConfig{}); err == nil {
		t.Fatal("Expected error for empty db path")
	}
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "accounts.db")

	backend, err := NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	if err := backend.SaveAccount(ctx, &AccountState{
		Account:    "durable",
		DailyLimit: 1500,
		LimitType:  limits.LimitTypeEstablished,
	}); err != nil {
		t.Fatalf("SaveAccount failed: %v", err)
	}
	if err := backend.RecordSpend(ctx, "durable", 300); err != nil {
		t.Fatalf("RecordSpend failed: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopen and verify state survived.
	reopened, err := NewSQLiteBackend(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen backend: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.LoadAccount(ctx, "durable")
	if err != nil {
		t.Fatalf("LoadAccount failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected account to survive reopen")
	}
	if loaded.DailyLimit != 1500 {
		t.Errorf("Expected daily limit 1500, got %v", loaded.DailyLimit)
	}
	if loaded.Spending.TotalSpent != 300 || loaded.Spending.TransactionCount != 1 {
		t.Errorf("Unexpected spending record: %+v", loaded.Spending)
	}
}

func TestSQLiteBackend_CloseIdempotent(t *testing.T) {
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "accounts.db"))
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}

	if err := backend.Close(); err != nil {
		t.Fatalf("First close failed: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Second close failed: %v", err)
	}
}

func TestSQLiteBackend_SaveUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "accounts.db"))
	if err != nil {
		t.Fatalf("Failed to create backend: %v", err)
	}
	defer backend.Close()

	state := &AccountState{
		Account:    "acct",
		DailyLimit: 500,
		LimitType:  limits.LimitTypeNewAccount,
	}
	if err := backend.SaveAccount(ctx, state); err != nil {
		t.Fatalf("SaveAccount failed: %v", err)
	}

	state.DailyLimit = 800
	if err := backend.SaveAccount(ctx, state); err != nil {
		t.Fatalf("Second SaveAccount failed: %v", err)
	}

	loaded, err := backend.LoadAccount(ctx, "acct")
	if err != nil {
		t.Fatalf("LoadAccount failed: %v", err)
	}
	if loaded.DailyLimit != 800 {
		t.Errorf("Expected updated limit 800, got %v", loaded.DailyLimit)
	}

	states, err := backend.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts failed: %v", err)
	}
	if len(states) != 1 {
		t.Errorf("Expected a single row after upsert, got %d", len(states))
	}
}
