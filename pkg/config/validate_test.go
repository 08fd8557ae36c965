package config

import (
	"errors"
	"strings"
	"testing"
)

// validConfig returns a configuration that passes validation.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Errorf("expected defaults to validate, got: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:      "empty listen address",
			mutate:    func(c *Config) { c.Server.ListenAddress = "" },
			wantField: "server.listen_address",
		},
		{
			name:      "negative read timeout",
			mutate:    func(c *Config) { c.Server.ReadTimeout = -1 },
			wantField: "server.read_timeout",
		},
		{
			name:      "critical threshold above 100",
			mutate:    func(c *Config) { c.Policy.CriticalThreshold = 150 },
			wantField: "policy.critical_threshold",
		},
		{
			name:      "critical threshold zero",
			mutate:    func(c *Config) { c.Policy.CriticalThreshold = 0 },
			wantField: "policy.critical_threshold",
		},
		{
			name: "warning above critical",
			mutate: func(c *Config) {
				c.Policy.WarningThreshold = 95
				c.Policy.CriticalThreshold = 90
			},
			wantField: "policy.warning_threshold",
		},
		{
			name:      "approaching threshold negative",
			mutate:    func(c *Config) { c.Policy.ApproachingThreshold = -5 },
			wantField: "policy.approaching_threshold",
		},
		{
			name:      "negative upgrade age",
			mutate:    func(c *Config) { c.Policy.UpgradeAgeDays = -1 },
			wantField: "policy.upgrade_age_days",
		},
		{
			name:      "upgraded limit zero",
			mutate:    func(c *Config) { c.Policy.UpgradedLimit = 0 },
			wantField: "policy.upgraded_limit",
		},
		{
			name:      "unknown storage backend",
			mutate:    func(c *Config) { c.Storage.Backend = "redis" },
			wantField: "storage.backend",
		},
		{
			name: "sqlite backend without path",
			mutate: func(c *Config) {
				c.Storage.Backend = "sqlite"
				c.Storage.SQLitePath = ""
			},
			wantField: "storage.sqlite_path",
		},
		{
			name: "invalid rollover schedule",
			mutate: func(c *Config) {
				c.Rollover.Enabled = true
				c.Rollover.Schedule = "every day at midnight"
			},
			wantField: "rollover.schedule",
		},
		{
			name:      "unknown logging level",
			mutate:    func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "unknown logging format",
			mutate:    func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
		},
		{
			name: "metrics path without leading slash",
			mutate: func(c *Config) {
				c.Telemetry.Metrics.Enabled = true
				c.Telemetry.Metrics.Path = "metrics"
			},
			wantField: "telemetry.metrics.path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}

			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %q, got: %v", tt.wantField, err)
			}
		})
	}
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.ListenAddress = ""
	cfg.Policy.UpgradedLimit = -100
	cfg.Storage.Backend = "etcd"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) < 3 {
		t.Errorf("expected at least 3 field errors, got %d: %v", len(verr.Errors), err)
	}
	if !strings.Contains(err.Error(), "validation failed with") {
		t.Errorf("expected multi-error message, got: %v", err)
	}
}

func TestValidate_RolloverDisabledSkipsSchedule(t *testing.T) {
	cfg := validConfig()
	cfg.Rollover.Enabled = false
	cfg.Rollover.Schedule = "garbage"

	if err := Validate(cfg); err != nil {
		t.Errorf("expected disabled rollover to skip schedule validation, got: %v", err)
	}
}

func TestPolicyConfig_Policy(t *testing.T) {
	pc := PolicyConfig{
		CriticalThreshold:    92,
		WarningThreshold:     65,
		ApproachingThreshold: 78,
		UpgradeAgeDays:       10,
		UpgradedLimit:        7500,
		Currency:             "$",
	}

	p := pc.Policy()
	if p.CriticalThreshold != 92 || p.WarningThreshold != 65 || p.ApproachingThreshold != 78 {
		t.Errorf("unexpected thresholds: %+v", p)
	}
	if p.UpgradeAgeDays != 10 || p.UpgradedLimit != 7500 {
		t.Errorf("unexpected upgrade settings: %+v", p)
	}
}
