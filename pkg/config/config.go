package config

import (
	"time"

	"spendwatch-hq/spendwatch/pkg/limits"
)

// Config is the root configuration for spendwatch.
type Config struct {
	// Server configures the HTTP status API.
	Server ServerConfig `yaml:"server"`

	// Policy configures the limit evaluation thresholds.
	Policy PolicyConfig `yaml:"policy"`

	// Storage configures the account state backend.
	Storage StorageConfig `yaml:"storage"`

	// Rollover configures the daily spending reset.
	Rollover RolloverConfig `yaml:"rollover"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the host:port to listen on.
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request.
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// ShutdownTimeout is how long to wait for in-flight requests
	// during graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// PolicyConfig contains the evaluation policy knobs.
//
// The warning and approaching thresholds are deliberately separate
// settings: the warning tier colors the display from 70%, while the
// approaching-limit banner fires at 80%.
type PolicyConfig struct {
	// CriticalThreshold is the usage percentage for the critical tier.
	CriticalThreshold float64 `yaml:"critical_threshold"`

	// WarningThreshold is the usage percentage for the warning tier.
	WarningThreshold float64 `yaml:"warning_threshold"`

	// ApproachingThreshold is the usage percentage at which the
	// approaching-limit warning fires.
	ApproachingThreshold float64 `yaml:"approaching_threshold"`

	// UpgradeAgeDays is the account age at which new accounts are
	// promoted to the upgraded limit.
	UpgradeAgeDays int `yaml:"upgrade_age_days"`

	// UpgradedLimit is the daily limit applied on promotion.
	UpgradedLimit float64 `yaml:"upgraded_limit"`

	// Currency is the symbol used when rendering amounts in the CLI.
	Currency string `yaml:"currency"`
}

// Policy converts the configuration into an evaluation policy.
func (c PolicyConfig) Policy() limits.Policy {
	return limits.Policy{
		CriticalThreshold:    c.CriticalThreshold,
		WarningThreshold:     c.WarningThreshold,
		ApproachingThreshold: c.ApproachingThreshold,
		UpgradeAgeDays:       c.UpgradeAgeDays,
		UpgradedLimit:        c.UpgradedLimit,
	}
}

// StorageConfig contains account state persistence settings.
type StorageConfig struct {
	// Backend selects the storage implementation: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string `yaml:"sqlite_path"`
}

// RolloverConfig contains daily rollover settings.
type RolloverConfig struct {
	// Enabled turns the rollover scheduler on.
	Enabled bool `yaml:"enabled"`

	// Schedule is the cron expression for the rollover.
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is the output format: json or text.
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint.
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	Path string `yaml:"path"`
}
