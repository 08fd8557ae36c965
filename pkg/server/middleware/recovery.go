package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a 500
// Internal Server Error response. It logs the panic with stack trace for
// debugging but does not expose internal details to clients.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				stack := debug.Stack()

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "An internal error occurred. Please try again later.",
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
