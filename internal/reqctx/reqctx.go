// Package reqctx carries per-request identifiers (request ID, authenticated
// user ID) through context so the log handler can attach them to every record.
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}
type userIDKey struct{}

// NewRequestID generates a random UUID v4 request ID.
func NewRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a copy of ctx with the request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID extracts the request ID from ctx. Returns "" if absent.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithUserID returns a copy of ctx with the authenticated user ID attached.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserID extracts the authenticated user ID from ctx. Returns "" if absent.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
