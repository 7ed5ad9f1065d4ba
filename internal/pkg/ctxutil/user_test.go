package ctxutil_test

import (
	"context"
	"testing"

	"dispatch/internal/pkg/ctxutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserFromContext(t *testing.T) {
	id := uuid.New()

	got, ok := ctxutil.UserFromContext(ctxutil.WithUserID(t.Context(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = ctxutil.UserFromContext(context.Background())
	assert.False(t, ok)

	_, ok = ctxutil.UserFromContext(ctxutil.WithUserID(t.Context(), uuid.Nil))
	assert.False(t, ok)
}
