package services

import (
	"errors"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/order"
)

var (
	// ErrOrderNotAvailable is returned when the order already has an agent.
	ErrOrderNotAvailable = errors.New("order is not available for claiming")

	// ErrNotAssignedAgent is returned when an agent acts on an order held by someone else.
	ErrNotAssignedAgent = errors.New("agent is not assigned to the order")

	// ErrStatusNotSettable is returned when the requested status is not one an agent may set.
	ErrStatusNotSettable = errors.New("status cannot be set by an agent")
)

// OrderDispatcher applies the claim and progression rules between an agent and an order.
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Claim assigns o to a. The caller is expected to hold a row lock on o so that
// two concurrent claims cannot both observe it unassigned.
func (OrderDispatcher) Claim(o *order.Order, a *agent.Agent) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}
	if o.IsAssigned() {
		return ErrOrderNotAvailable
	}
	return o.AssignTo(a.ID())
}

// Advance moves o to next on behalf of a. Ownership is checked before the
// transition table, so an agent asking about someone else's order learns
// nothing about its status.
//
// commands.NewUpdateOrderStatusCommand already refuses statuses an agent may
// not set; the ErrStatusNotSettable check keeps the rule in the domain for
// callers that build the request some other way.
func (OrderDispatcher) Advance(o *order.Order, a *agent.Agent, next order.Status) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}
	if !next.IsAgentSettable() {
		return ErrStatusNotSettable
	}
	if !o.IsAssignedTo(a.ID()) {
		return ErrNotAssignedAgent
	}
	return o.TransitionTo(next)
}
