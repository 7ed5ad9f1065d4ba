// Package notifications turns committed order domain events into live
// notifications on the event bus.
//
// Two kinds of topic exist:
//   - OrderTopic(id): status updates for a single order, {"status", "updatedAt"}
//   - DashboardTopic: the shared feed of orders appearing on or leaving the
//     available list, {"type": "ADD"|"REMOVE", "orderId", "message", "timestamp"}
//
// Topic strings are built only here so publishers and subscribers cannot drift.
package notifications

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

const (
	DashboardTopic = "dashboard:available:update"

	orderTopicPrefix = "order:"
)

// OrderTopic is the per-order status topic, "order:<id>".
func OrderTopic(orderID kernel.UUID) string {
	return orderTopicPrefix + orderID.String()
}

type DashboardChange string

const (
	DashboardAdd    DashboardChange = "ADD"
	DashboardRemove DashboardChange = "REMOVE"
)

const newOrderMessage = "A new order is available in your area!"

// OrderStatusPayload is published on OrderTopic. UpdatedAt is omitted for the
// assignment notification.
type OrderStatusPayload struct {
	Status    string     `json:"status"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// DashboardPayload is published on DashboardTopic.
type DashboardPayload struct {
	Type      DashboardChange `json:"type"`
	OrderID   string          `json:"orderId"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
}

func removedMessage(orderID kernel.UUID) string {
	return "Order " + orderID.String() + " is no longer available"
}
