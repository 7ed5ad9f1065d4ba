// Package ctxutil carries request-scoped identity through context.Context.
// It has no internal dependencies so adapters and handlers can share it.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// UserKey is the context key for the authenticated user id.
type UserKey struct{}

// WithUserID returns a context carrying userID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserKey{}, userID)
}

// UserFromContext returns the authenticated user id. ok is false for anonymous
// requests and for the nil UUID.
func UserFromContext(ctx context.Context) (userID uuid.UUID, ok bool) {
	userID, ok = ctx.Value(UserKey{}).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}
