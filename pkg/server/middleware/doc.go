// Package middleware provides HTTP middleware for the spendwatch status API.
//
// The middleware chain, from outermost to innermost:
//
//  1. Recovery - catches panics and returns 500
//  2. RequestID - request ID generation and propagation
//  3. Logging - structured request/response logging
//  4. Timeout - per-request timeout enforcement
//
// RequestID wraps Logging so the request logs carry the request ID from
// the context.
//
// Each middleware wraps an http.Handler and can be composed freely, but the
// order above is what the server installs.
package middleware
