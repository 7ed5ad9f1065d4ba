package order

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by every TransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status is the lifecycle state of an order, persisted as its string value.
type Status string

const (
	Created   Status = "created"
	Assigned  Status = "assigned"
	Picked    Status = "picked"
	Delivered Status = "delivered"
)

// transitions is the single source of truth for agent driven status changes.
// Reaching Assigned is handled by Order.AssignTo and is not listed here.
var transitions = map[Status][]Status{
	Assigned: {Picked},
	Picked:   {Delivered},
}

// ParseStatus converts external input into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

func (s Status) Validate() error {
	switch s {
	case Created, Assigned, Picked, Delivered:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// IsAgentSettable reports whether an agent may request s through a status update.
func (s Status) IsAgentSettable() bool {
	return s == Picked || s == Delivered
}

// TransitionError reports a status change outside of the transition table.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
