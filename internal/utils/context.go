// Package utils provides general-purpose helpers shared by the console
// packages: type-safe context keys, the resty client wrapper, unverified JWT
// claim extraction and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// CorrelationIDCtxKey is the key under which an outbound request's
// correlation id is stored in the context.
var CorrelationIDCtxKey = contextKey("correlationID")

// WithCorrelationID returns a copy of ctx carrying id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDCtxKey, id)
}

// GetCorrelationIDFromContext retrieves the correlation id from ctx.
//
// ok is false when the value is missing, empty or of an unexpected type.
func GetCorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CorrelationIDCtxKey).(string)
	return id, ok && id != ""
}
