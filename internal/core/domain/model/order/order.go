package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrAlreadyAssigned is returned by AssignTo when the order already has an agent.
	ErrAlreadyAssigned = errors.New("order is already assigned")
)

// Order is the aggregate root of the dispatch domain.
//
// Invariants:
//   - agentID is nil exactly when status is Created
//   - agentID is set once by AssignTo and never changes afterwards
//   - status only moves along the transition table
type Order struct {
	id        kernel.UUID
	agentID   *kernel.UUID
	status    Status
	createdAt time.Time
	updatedAt time.Time

	domainEvents  []DomainEvent
	isConstructed bool
}

// NewOrder creates an unassigned order and records a CreatedEvent.
func NewOrder(id kernel.UUID) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	ts := now()
	o := &Order{
		id:            id,
		status:        Created,
		createdAt:     ts,
		updatedAt:     ts,
		isConstructed: true,
	}
	o.raise(CreatedEvent{OrderID: id, At: ts})
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state without recording events.
func RestoreOrder(
	id kernel.UUID,
	agentID *kernel.UUID,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return nil, err
		}
	}

	if agentID == nil && status != Created {
		return nil, errs.NewValueIsInvalidErrorWithCause("agentID",
			fmt.Errorf("order in status %s must have an agent", status))
	}
	if agentID != nil && status == Created {
		return nil, errs.NewValueIsInvalidErrorWithCause("agentID",
			fmt.Errorf("order in status %s must not have an agent", status))
	}

	return &Order{
		id:            id,
		agentID:       agentID,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// AgentID returns the assigned agent or nil while the order is unclaimed.
func (o *Order) AgentID() *kernel.UUID {
	return o.agentID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) IsAssigned() bool {
	return o.agentID != nil
}

// IsAssignedTo reports whether agentID is the agent holding this order.
func (o *Order) IsAssignedTo(agentID kernel.UUID) bool {
	return o.agentID != nil && o.agentID.IsEqual(agentID)
}

// AssignTo links the order to agentID and moves it to Assigned.
func (o *Order) AssignTo(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.agentID != nil || o.status != Created {
		return ErrAlreadyAssigned
	}

	ts := now()
	o.agentID = &agentID
	o.status = Assigned
	o.updatedAt = ts
	o.raise(AssignedEvent{OrderID: o.id, AgentID: agentID, At: ts})
	return nil
}

// TransitionTo advances the order along the transition table. Anything else
// yields a *TransitionError and leaves the order untouched.
func (o *Order) TransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(next) {
		return &TransitionError{From: o.status, To: next}
	}

	ts := now()
	prev := o.status
	o.status = next
	o.updatedAt = ts
	o.raise(StatusChangedEvent{OrderID: o.id, From: prev, To: next, At: ts})
	return nil
}

// DomainEvents returns the events recorded since construction or the last ClearDomainEvents.
func (o *Order) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(o.domainEvents))
	copy(out, o.domainEvents)
	return out
}

func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raise(ev DomainEvent) {
	o.domainEvents = append(o.domainEvents, ev)
}

// now is truncated to microseconds, the resolution of postgres timestamps, so
// values published after commit match what a later read returns.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
