// Package logging provides structured logging for spendwatch built on
// log/slog.
//
// # Overview
//
// The package maps the telemetry configuration onto an slog handler
// (JSON or text, at the configured level) and installs it as the process
// default. Components obtain their own logger via slog.Default().With
// to carry a stable "component" attribute.
//
// # Context Fields
//
// Request-scoped values (the request ID assigned by the HTTP middleware
// and the account under evaluation) travel through context.Context. The
// FromContext helper returns a logger pre-populated with whatever fields
// are present, so handlers do not repeat them on every call.
package logging
