package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"spendwatch-hq/spendwatch/pkg/limits"
)

// Orchestrator produces limit-status snapshots: it fetches the limit and
// spending records concurrently, joins them, and evaluates the pair.
//
// The orchestrator owns the join-then-evaluate contract. Either fetch
// failing aborts the snapshot with an Unavailable result; the evaluator is
// never called with partial data.
type Orchestrator struct {
	provider Provider
	policy   limits.Policy
	metrics  *limits.Metrics
	logger   *slog.Logger
}

// NewOrchestrator creates a snapshot orchestrator.
// Metrics may be nil to disable instrumentation.
func NewOrchestrator(p Provider, policy limits.Policy, metrics *limits.Metrics) *Orchestrator {
	return &Orchestrator{
		provider: p,
		policy:   policy,
		metrics:  metrics,
		logger:   slog.Default().With("component", "limits.orchestrator"),
	}
}

// fetchResult carries one side of the concurrent fetch.
type fetchResult[T any] struct {
	record *T
	err    error
}

// Snapshot fetches both input records for the account concurrently,
// waits for both, and evaluates them into a Result.
//
// Outcomes:
//   - both fetches succeed and the limit is valid: Ready
//   - either fetch fails or ctx is cancelled: Unavailable with that error
//   - the stored daily limit is non-positive: Unavailable wrapping
//     limits.ErrInvalidLimit
func (o *Orchestrator) Snapshot(ctx context.Context, account string) limits.Result {
	start := time.Now()

	limitCh := make(chan fetchResult[limits.LimitRecord], 1)
	spendingCh := make(chan fetchResult[limits.SpendingRecord], 1)

	go func() {
		record, err := o.provider.FetchLimit(ctx, account)
		limitCh <- fetchResult[limits.LimitRecord]{record: record, err: err}
	}()
	go func() {
		record, err := o.provider.FetchSpending(ctx, account)
		spendingCh <- fetchResult[limits.SpendingRecord]{record: record, err: err}
	}()

	// Join: both fetches must complete before evaluation. The channels
	// are buffered so neither goroutine leaks if the other side fails.
	limitRes := <-limitCh
	spendingRes := <-spendingCh

	if o.metrics != nil {
		defer o.metrics.RecordSnapshotDuration(time.Since(start).Seconds())
	}

	if limitRes.err != nil {
		o.logger.Warn("limit record fetch failed",
			"account", account,
			"error", limitRes.err,
		)
		if o.metrics != nil {
			o.metrics.RecordFetchFailure("limit")
		}
		return limits.Unavailable(fmt.Errorf("limit record unavailable: %w", limitRes.err))
	}
	if spendingRes.err != nil {
		o.logger.Warn("spending record fetch failed",
			"account", account,
			"error", spendingRes.err,
		)
		if o.metrics != nil {
			o.metrics.RecordFetchFailure("spending")
		}
		return limits.Unavailable(fmt.Errorf("spending record unavailable: %w", spendingRes.err))
	}

	// A provider must return a record whenever it returns no error.
	// Treat a nil record as a fetch failure instead of dereferencing it.
	if limitRes.record == nil {
		if o.metrics != nil {
			o.metrics.RecordFetchFailure("limit")
		}
		return limits.Unavailable(fmt.Errorf("limit record unavailable: provider returned no record for %q", account))
	}
	if spendingRes.record == nil {
		if o.metrics != nil {
			o.metrics.RecordFetchFailure("spending")
		}
		return limits.Unavailable(fmt.Errorf("spending record unavailable: provider returned no record for %q", account))
	}

	status, err := o.policy.Evaluate(*limitRes.record, *spendingRes.record)
	if err != nil {
		o.logger.Error("evaluation failed",
			"account", account,
			"daily_limit", limitRes.record.DailyLimit,
			"error", err,
		)
		if o.metrics != nil {
			o.metrics.RecordInvalidLimit()
		}
		return limits.Unavailable(err)
	}

	if o.metrics != nil {
		o.metrics.RecordEvaluation(account, status)
	}

	o.logger.Debug("snapshot evaluated",
		"account", account,
		"tier", status.Tier,
		"usage_pct", status.UsagePercentage,
	)

	return limits.Ready(status)
}

// Policy returns the evaluation policy the orchestrator applies.
func (o *Orchestrator) Policy() limits.Policy {
	return o.policy
}
