// Package idempotency carries the deduplication key of the change event
// currently being processed. The evaluation pipeline derives outbox message
// keys from it, so redelivered WAL messages produce the same annotated event.
package idempotency

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithKey attaches the consumed message's deduplication key to the context.
func WithKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKey{}, key)
}

// GetKey returns the attached key, or a fresh random one when the work was
// not triggered by a consumed message.
func GetKey(ctx context.Context) string {
	key, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return uuid.NewString()
	}

	return key
}
