package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// StatusRepository appends to the order status history. Existing records are
// never updated or deleted. History is read by queries.GetOrderStatusHistoryQueryHandler.
type StatusRepository interface {
	// Add appends one record inside the caller's unit of work.
	Add(ctx context.Context, record order.StatusRecord) error
}
