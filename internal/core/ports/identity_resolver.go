package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// IdentityResolver maps a bearer credential to the authenticated user id.
// Unknown or expired credentials yield *errs.ObjectNotFoundError.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (kernel.UUID, error)
}
