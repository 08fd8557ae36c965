// Package rollover resets daily spending and applies limit promotions on a
// schedule. It is the process that turns "daily limit" from a label into a
// behavior: at each rollover every account's spending record starts from
// zero, and new accounts that have aged past the probation window receive
// their upgraded limit.
package rollover

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"spendwatch-hq/spendwatch/pkg/limits"
	"spendwatch-hq/spendwatch/pkg/limits/storage"
)

// Config contains configuration for the rollover scheduler.
type Config struct {
	// Schedule is the cron expression for the daily rollover.
	// Default: "0 0 * * *" (midnight).
	Schedule string

	// Policy supplies the upgrade age and upgraded limit applied
	// during promotion.
	Policy limits.Policy
}

// Scheduler runs the daily spending reset and account promotion
// at scheduled times using cron syntax.
type Scheduler struct {
	backend storage.Backend
	config  Config
	cron    *cron.Cron
	mu      sync.Mutex
	logger  *slog.Logger
	running bool
}

// NewScheduler creates a new rollover scheduler.
func NewScheduler(backend storage.Backend, config Config) *Scheduler {
	if config.Schedule == "" {
		config.Schedule = "0 0 * * *"
	}

	return &Scheduler{
		backend: backend,
		config:  config,
		cron:    cron.New(),
		logger:  slog.Default().With("component", "limits.rollover"),
	}
}

// Start begins scheduled rollovers based on the cron expression.
//
// Common cron expressions:
//   - "0 0 * * *"  - Daily at midnight
//   - "0 6 * * *"  - Daily at 6 AM
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate cron expression
	if _, err := cron.ParseStandard(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.config.Schedule, err)
	}

	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runRollover(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule rollover: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rollover scheduler started",
		"schedule", s.config.Schedule,
		"upgrade_age_days", s.config.Policy.UpgradeAgeDays,
		"upgraded_limit", s.config.Policy.UpgradedLimit,
	)

	// Wait for context cancellation in background
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// RunNow executes a rollover cycle immediately, outside the schedule.
// This is the entry point for manual rollovers and tests.
func (s *Scheduler) RunNow(ctx context.Context) error {
	reset, err := s.backend.ResetSpending(ctx)
	if err != nil {
		return fmt.Errorf("spending reset failed: %w", err)
	}

	promoted, err := s.backend.PromoteAccounts(ctx, s.config.Policy.UpgradeAgeDays, s.config.Policy.UpgradedLimit)
	if err != nil {
		return fmt.Errorf("account promotion failed: %w", err)
	}

	s.logger.Info("rollover completed",
		"accounts_reset", reset,
		"accounts_promoted", promoted,
	)

	return nil
}

// runRollover executes a scheduled rollover cycle.
func (s *Scheduler) runRollover(ctx context.Context) {
	s.logger.Info("starting scheduled rollover")

	if err := s.RunNow(ctx); err != nil {
		s.logger.Error("scheduled rollover failed",
			"error", err,
		)
	}
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("rollover scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled rollover time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
