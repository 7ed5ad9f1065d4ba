// Package statusrepo persists the append-only order status history.
package statusrepo

import (
	"time"

	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderStatusDTO is one order_statuses row. The composite index on
// (order_id, created_at) serves the history query, which reads an order's
// rows oldest first.
type OrderStatusDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_order_statuses_order_created,priority:1"`
	Status    string    `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false;index:idx_order_statuses_order_created,priority:2"`
}

// TableName pins the table to "order_statuses".
func (OrderStatusDTO) TableName() string {
	return "order_statuses"
}

func fromDomain(r order.StatusRecord) OrderStatusDTO {
	return OrderStatusDTO{
		ID:        r.ID().Bytes(),
		OrderID:   r.OrderID().Bytes(),
		Status:    r.Status().String(),
		CreatedAt: r.CreatedAt(),
	}
}
