package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// Policy defaults
	DefaultCriticalThreshold    = 90.0
	DefaultWarningThreshold     = 70.0
	DefaultApproachingThreshold = 80.0
	DefaultUpgradeAgeDays       = 7
	DefaultUpgradedLimit        = 5000.0
	DefaultCurrency             = "$"

	// Storage defaults
	DefaultStorageBackend = "sqlite"
	DefaultSQLitePath     = "data/spendwatch.db"

	// Rollover defaults
	DefaultRolloverSchedule = "0 0 * * *"

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// Policy defaults
	if cfg.Policy.CriticalThreshold == 0 {
		cfg.Policy.CriticalThreshold = DefaultCriticalThreshold
	}
	if cfg.Policy.WarningThreshold == 0 {
		cfg.Policy.WarningThreshold = DefaultWarningThreshold
	}
	if cfg.Policy.ApproachingThreshold == 0 {
		cfg.Policy.ApproachingThreshold = DefaultApproachingThreshold
	}
	if cfg.Policy.UpgradeAgeDays == 0 {
		cfg.Policy.UpgradeAgeDays = DefaultUpgradeAgeDays
	}
	if cfg.Policy.UpgradedLimit == 0 {
		cfg.Policy.UpgradedLimit = DefaultUpgradedLimit
	}
	if cfg.Policy.Currency == "" {
		cfg.Policy.Currency = DefaultCurrency
	}

	// Storage defaults
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = DefaultStorageBackend
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = DefaultSQLitePath
	}

	// Rollover defaults
	if cfg.Rollover.Schedule == "" {
		cfg.Rollover.Schedule = DefaultRolloverSchedule
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
