package main

import (
	"fmt"

	"spendwatch-hq/spendwatch/pkg/config"
	"spendwatch-hq/spendwatch/pkg/limits/storage"
)

// openBackend creates the storage backend selected by the configuration.
// The caller owns the returned backend and must Close it.
func openBackend(cfg *config.StorageConfig) (storage.Backend, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryBackend(), nil
	case "sqlite":
		backend, err := storage.NewSQLiteBackend(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite backend: %w", err)
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.Backend)
	}
}
