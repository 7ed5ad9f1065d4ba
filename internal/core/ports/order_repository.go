// Package ports declares the contracts the dispatch core needs from the outside
// world: persistence behind a unit of work, identity resolution and delivery of
// domain events. Adapters under internal/adapters implement them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order's agent, status and updatedAt.
	// Returns an error when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order by id without locking it.
	// Returns *errs.ObjectNotFoundError when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetUnassignedForUpdate loads the order only if no agent holds it and locks
	// the row until the surrounding transaction ends. Concurrent claimers block on
	// the lock and, once it is released, no longer match.
	// Returns *errs.ObjectNotFoundError when the order is missing or already taken.
	GetUnassignedForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAssignedForUpdate loads the order only if agentID holds it and locks the row.
	// Returns *errs.ObjectNotFoundError otherwise.
	GetAssignedForUpdate(ctx context.Context, id, agentID kernel.UUID) (*order.Order, error)
}
