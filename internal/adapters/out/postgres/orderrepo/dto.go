// Package orderrepo maps the Order aggregate to the orders table. The DTO and
// its mapping functions stay private to the package, so the rest of the
// application only ever sees *order.Order.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Timestamps are owned by the domain, so gorm's
// automatic create/update time tracking is switched off.
//
// AgentID is NULL until the order is claimed; the available orders query
// filters on agent_id IS NULL.
//
// Example row:
//
//	id         | 0b9f1c7e-6f2d-4a57-9c43-2f4a3e5d8b10
//	agent_id   | 7d0c2a4e-1f3b-4c8d-9e2a-5b6c7d8e9f01
//	status     | picked
//	created_at | 2026-10-18 09:12:03.412+00
//	updated_at | 2026-10-18 09:40:55.031+00
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AgentID   *uuid.UUID `gorm:"type:uuid;index"`
	Status    string     `gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime:false"`
}

// TableName pins the table to "orders" regardless of gorm's naming strategy.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain flattens an aggregate into a row. A nil agent becomes a NULL
// agent_id.
func fromDomain(o *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := o.AgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return OrderDTO{
		ID:        o.ID().Bytes(),
		AgentID:   agentID,
		Status:    o.Status().String(),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

// toDomain rebuilds the aggregate through order.RestoreOrder, which validates
// the status and the agent/status pairing. Timestamps are normalized to UTC
// because the driver hands them back in the session time zone.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}
		agentID = &aID
	}

	return order.RestoreOrder(id, agentID, order.Status(dto.Status), dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
