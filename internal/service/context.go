package service

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID adds a request id to the context for log correlation
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID retrieves the request id from context, or "" if none was set
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
