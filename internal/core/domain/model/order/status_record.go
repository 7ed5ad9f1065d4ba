package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// StatusRecord is one entry of an order's append-only status history.
type StatusRecord struct {
	id        kernel.UUID
	orderID   kernel.UUID
	status    Status
	createdAt time.Time
}

func NewStatusRecord(id, orderID kernel.UUID, status Status, createdAt time.Time) (StatusRecord, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return StatusRecord{}, err
	}
	return StatusRecord{id: id, orderID: orderID, status: status, createdAt: createdAt}, nil
}

// RecordFor builds the history entry matching the order's current status.
func RecordFor(o *Order) (StatusRecord, error) {
	if err := o.Validate(); err != nil {
		return StatusRecord{}, err
	}
	return NewStatusRecord(kernel.NewUUID(), o.id, o.status, o.updatedAt)
}

func (r StatusRecord) ID() kernel.UUID      { return r.id }
func (r StatusRecord) OrderID() kernel.UUID { return r.orderID }
func (r StatusRecord) Status() Status       { return r.status }
func (r StatusRecord) CreatedAt() time.Time { return r.createdAt }
