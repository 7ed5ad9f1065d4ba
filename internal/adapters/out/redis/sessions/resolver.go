// Package sessions resolves bearer tokens against session records kept in Redis.
//
// A session is a plain string key, <prefix><token>, whose value is the user id.
// Expiry is Redis' own TTL on that key.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "session:"

// Store implements ports.IdentityResolver.
type Store struct {
	client redis.UniversalClient
	prefix string
}

func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Resolve returns the user behind token. Unknown or expired tokens, and
// records that do not hold a valid id, yield *errs.ObjectNotFoundError.
func (s *Store) Resolve(ctx context.Context, token string) (kernel.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError("token")
	}

	raw, err := s.client.Get(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return kernel.UUID{}, errs.NewObjectNotFoundError("session", "<redacted>")
	}
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("read session: %w", err)
	}

	userID, err := kernel.ParseID("userID", raw)
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause("session", "<redacted>", err)
	}
	return userID, nil
}

// Put stores a session for userID. A zero ttl keeps it until deleted.
func (s *Store) Put(ctx context.Context, token string, userID kernel.UUID, ttl time.Duration) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return errs.NewValueIsRequiredError("token")
	}
	return s.client.Set(ctx, s.key(token), userID.String(), ttl).Err()
}

// Revoke deletes the session. Revoking an unknown token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *Store) key(token string) string {
	return s.prefix + token
}
