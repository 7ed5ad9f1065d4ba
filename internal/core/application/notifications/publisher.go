package notifications

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
)

// Broadcaster is the slice of the event bus the publisher needs.
type Broadcaster interface {
	Publish(topic string, data any)
}

// Publisher implements ports.DomainEventPublisher on top of a Broadcaster.
type Publisher struct {
	bus    Broadcaster
	logger *slog.Logger
}

func NewPublisher(bus Broadcaster, logger *slog.Logger) *Publisher {
	return &Publisher{
		bus:    bus,
		logger: logger.With("component", "notification_publisher"),
	}
}

// Publish maps each event to its topics. Unknown event types are skipped.
func (p *Publisher) Publish(ctx context.Context, events ...order.DomainEvent) {
	for _, ev := range events {
		switch e := ev.(type) {
		case order.CreatedEvent:
			p.send(ctx, DashboardTopic, DashboardPayload{
				Type:      DashboardAdd,
				OrderID:   e.OrderID.String(),
				Message:   newOrderMessage,
				Timestamp: e.At,
			})

		case order.AssignedEvent:
			p.send(ctx, OrderTopic(e.OrderID), OrderStatusPayload{
				Status: order.Assigned.String(),
			})
			p.send(ctx, DashboardTopic, DashboardPayload{
				Type:      DashboardRemove,
				OrderID:   e.OrderID.String(),
				Message:   removedMessage(e.OrderID),
				Timestamp: e.At,
			})

		case order.StatusChangedEvent:
			updatedAt := e.At
			p.send(ctx, OrderTopic(e.OrderID), OrderStatusPayload{
				Status:    e.To.String(),
				UpdatedAt: &updatedAt,
			})

		default:
			p.logger.WarnContext(ctx, "Skipping unsupported domain event", "event", ev)
		}
	}
}

func (p *Publisher) send(ctx context.Context, topic string, payload any) {
	p.bus.Publish(topic, payload)
	p.logger.DebugContext(ctx, "Notification published", "topic", topic)
}
