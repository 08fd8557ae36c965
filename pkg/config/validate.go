package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validatePolicy(&cfg.Policy)...)
	errs = append(errs, validateStorage(&cfg.Storage)...)
	errs = append(errs, validateRollover(&cfg.Rollover)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateServer validates HTTP server configuration.
func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes must be positive",
		})
	}

	return errs
}

// validatePolicy validates evaluation policy configuration.
func validatePolicy(cfg *PolicyConfig) []FieldError {
	var errs []FieldError

	if cfg.CriticalThreshold <= 0 || cfg.CriticalThreshold > 100 {
		errs = append(errs, FieldError{
			Field:   "policy.critical_threshold",
			Message: "critical threshold must be in (0, 100]",
		})
	}
	if cfg.WarningThreshold <= 0 || cfg.WarningThreshold > 100 {
		errs = append(errs, FieldError{
			Field:   "policy.warning_threshold",
			Message: "warning threshold must be in (0, 100]",
		})
	}
	if cfg.WarningThreshold > 0 && cfg.CriticalThreshold > 0 && cfg.WarningThreshold >= cfg.CriticalThreshold {
		errs = append(errs, FieldError{
			Field:   "policy.warning_threshold",
			Message: "warning threshold must be below critical threshold",
		})
	}
	if cfg.ApproachingThreshold <= 0 || cfg.ApproachingThreshold > 100 {
		errs = append(errs, FieldError{
			Field:   "policy.approaching_threshold",
			Message: "approaching threshold must be in (0, 100]",
		})
	}
	if cfg.UpgradeAgeDays < 0 {
		errs = append(errs, FieldError{
			Field:   "policy.upgrade_age_days",
			Message: "upgrade age must not be negative",
		})
	}
	if cfg.UpgradedLimit <= 0 {
		errs = append(errs, FieldError{
			Field:   "policy.upgraded_limit",
			Message: "upgraded limit must be positive",
		})
	}

	return errs
}

// validateStorage validates storage configuration.
func validateStorage(cfg *StorageConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("unknown backend %q (must be memory or sqlite)", cfg.Backend),
		})
	}
	if cfg.Backend == "sqlite" && cfg.SQLitePath == "" {
		errs = append(errs, FieldError{
			Field:   "storage.sqlite_path",
			Message: "sqlite path is required for the sqlite backend",
		})
	}

	return errs
}

// validateRollover validates rollover scheduler configuration.
func validateRollover(cfg *RolloverConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "rollover.schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (must be debug, info, warn, or error)", cfg.Logging.Level),
		})
	}
	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (must be json or text)", cfg.Logging.Format),
		})
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}
