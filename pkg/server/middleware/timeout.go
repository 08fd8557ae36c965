package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// TimeoutMiddleware enforces a per-request timeout using context.WithTimeout.
// If the timeout is exceeded, the request context is cancelled and a 504
// Gateway Timeout error is returned.
//
// Handlers should check context.Done() to detect cancellation.
//
// Example usage:
//
//	handler = TimeoutMiddleware(15 * time.Second)(handler)
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(w, r.WithContext(ctx))
			}()

			select {
			case <-done:
				return

			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"error": "request timeout: the request took too long to complete",
					})
				}
			}
		})
	}
}
