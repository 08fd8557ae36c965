package handlers

import (
	"context"
	"net/http"
	"time"
)

// Checker reports whether a dependency is ready to serve.
type Checker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context) error

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// HealthHandler handles health check requests for liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// ServeHTTP implements http.Handler for liveness checks.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// ReadyHandler handles readiness check requests.
type ReadyHandler struct {
	checker Checker
}

// NewReadyHandler creates a new readiness check handler.
func NewReadyHandler(checker Checker) *ReadyHandler {
	return &ReadyHandler{checker: checker}
}

// ServeHTTP implements http.Handler for readiness checks.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	statusCode := http.StatusOK

	if h.checker != nil {
		if err := h.checker.Check(r.Context()); err != nil {
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, statusCode, map[string]any{
		"status":    status,
		"timestamp": time.Now().Unix(),
	})
}
