package order

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// DomainEvent is a fact recorded by the Order aggregate during a state change.
type DomainEvent interface {
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

// CreatedEvent is recorded when a new order becomes available for claiming.
type CreatedEvent struct {
	OrderID kernel.UUID
	At      time.Time
}

func (e CreatedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e CreatedEvent) OccurredAt() time.Time    { return e.At }

// AssignedEvent is recorded when an agent claims an order.
type AssignedEvent struct {
	OrderID kernel.UUID
	AgentID kernel.UUID
	At      time.Time
}

func (e AssignedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e AssignedEvent) OccurredAt() time.Time    { return e.At }

// StatusChangedEvent is recorded when the assigned agent advances the order.
type StatusChangedEvent struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	At      time.Time
}

func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time    { return e.At }
