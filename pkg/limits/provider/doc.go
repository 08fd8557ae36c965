// Package provider supplies the raw inputs of limit evaluation and
// orchestrates the fetch-join-evaluate flow.
//
// # Overview
//
// A Provider returns the two records an evaluation needs: the account's
// limit record and its spending record. The two fetches are independent
// and potentially slow, so the Orchestrator runs them concurrently and
// joins the results before invoking the evaluator.
//
// # Failure contract
//
// A failure in either fetch aborts the snapshot: the Orchestrator returns
// an Unavailable result carrying the fetch error and never evaluates
// partial data. Timeouts and retries belong to the Provider implementation,
// not to the Orchestrator.
package provider
