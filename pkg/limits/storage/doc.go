// Package storage provides persistence backends for account limit state.
//
// # Overview
//
// The storage package owns the raw inputs of limit evaluation: for each
// account it stores the configured daily limit, the limit type, and the
// running spending record for the current day. The evaluator itself never
// touches storage - the provider package reads snapshots from a Backend
// and hands them to the evaluator.
//
// # Backends
//
//   - MemoryBackend: map-based, fast, no persistence. The default.
//   - SQLiteBackend: durable single-file storage using WAL mode, suitable
//     for single-instance deployments that must survive restarts.
//
// # Thread Safety
//
// All backends are safe for concurrent use.
package storage
