package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// AccountKey is the context key for account identifiers.
	AccountKey contextKey = "account"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithAccount adds an account identifier to the context.
func WithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, AccountKey, account)
}

// GetAccount retrieves the account identifier from the context.
func GetAccount(ctx context.Context) string {
	if account, ok := ctx.Value(AccountKey).(string); ok {
		return account
	}
	return ""
}

// FromContext returns a logger carrying whatever request-scoped fields
// are present in the context. With no fields present it returns the
// logger unchanged.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if account := GetAccount(ctx); account != "" {
		fields = append(fields, "account", account)
	}

	return fields
}
