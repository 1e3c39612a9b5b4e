package trace

import (
	"context"

	"github.com/google/uuid"
)

// Context key type stays unexported so callers go through the helpers.
type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// GenerateID returns a new correlation ID for a request.
func GenerateID() string {
	return uuid.NewString()
}

// WithRequestID stores the correlation ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestIDFromContext returns the stored correlation ID, or "" when
// the middleware never ran (background jobs, tests).
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}
