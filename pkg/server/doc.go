// Package server provides the HTTP status API server for spendwatch.
//
// # Overview
//
// The server exposes account management and limit-status evaluation over
// HTTP, plus the operational endpoints (/health, /ready, /metrics). It
// wires the middleware chain, handles graceful shutdown on SIGINT/SIGTERM,
// and honors the configured timeouts.
//
// # Lifecycle
//
//	srv := server.New(cfg, deps)
//	err := srv.Start(ctx)   // blocks until shutdown
//
// Start returns after a signal, context cancellation, or a listener
// error. In-flight requests get ShutdownTimeout to drain.
package server
