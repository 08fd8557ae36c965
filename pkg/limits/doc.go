// Package limits derives daily spending-limit status from raw account data.
//
// # Overview
//
// The limits package is the decision core of spendwatch. It takes two raw
// inputs for an account - a limit record and a spending record - and derives
// the quantities and policy decisions that drive display:
//
//   - Remaining amount and usage percentage
//   - Status tier (ok, warning, critical)
//   - Approaching-limit warning
//   - New-account upgrade eligibility and countdown
//
// # Architecture
//
// The package is organized into sub-packages:
//
//   - provider: data provider contract and the fetch-join orchestrator
//   - storage: persistence backends for account state (memory, SQLite)
//   - rollover: scheduled daily spending reset and limit promotion
//
// # Usage
//
//	policy := limits.DefaultPolicy()
//
//	status, err := policy.Evaluate(limitRec, spendingRec)
//	if err != nil {
//	    // non-positive daily limit, status cannot be computed
//	}
//	if status.ApproachingLimit {
//	    // warn the user
//	}
//
// # Purity
//
// Evaluate is a pure function of its inputs. It never mutates the records,
// performs no I/O, and holds no state, so concurrent calls are safe without
// locking. A Status is built fresh on every call and is never cached.
package limits
