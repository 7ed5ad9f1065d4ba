package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderToSelfCommandIsNotConstructed = errors.New(
	"AssignOrderToSelfCommand must be created via NewAssignOrderToSelfCommand constructor",
)

// AssignOrderToSelfCommand is an agent's request to claim an unassigned order.
// A zero userID means the caller is not authenticated; the handler answers
// that with KindNotAuthenticated rather than treating it as malformed input.
type AssignOrderToSelfCommand struct {
	userID  kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignOrderToSelfCommand(userID, orderID kernel.UUID) (AssignOrderToSelfCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignOrderToSelfCommand{}, err
	}

	return AssignOrderToSelfCommand{
		userID:  userID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderToSelfCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderToSelfCommandIsNotConstructed)
}

func (c AssignOrderToSelfCommand) UserID() kernel.UUID {
	return c.userID
}

func (c AssignOrderToSelfCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignOrderToSelfCommand) IsAuthenticated() bool {
	return !c.userID.IsZero()
}
