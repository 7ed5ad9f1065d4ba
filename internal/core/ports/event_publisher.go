package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// DomainEventPublisher hands committed domain events to the notification side.
// Publishing is fire-and-forget: it never fails the command that produced them.
type DomainEventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent)
}
