package logger

import "context"

type ctxKey int

const requestIDCtxKey ctxKey = iota

// WithRequestID returns a context carrying the request ID so that layers
// below the HTTP stack (repositories, SQL tracing) can correlate their logs
// with the originating request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, requestID)
}

// GetRequestID extracts the request ID from the context, or "" when absent.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDCtxKey).(string); ok {
		return id
	}
	return ""
}
