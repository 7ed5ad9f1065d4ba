package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand asks to move an order to picked or delivered on
// behalf of the agent holding it. As with claiming, a zero userID stands for an
// unauthenticated caller.
type UpdateOrderStatusCommand struct {
	userID     kernel.UUID
	orderID    kernel.UUID
	nextStatus order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand rejects any target other than picked or delivered.
func NewUpdateOrderStatusCommand(
	userID, orderID kernel.UUID,
	nextStatus order.Status,
) (UpdateOrderStatusCommand, error) {
	var statusErr error
	if !nextStatus.IsAgentSettable() {
		statusErr = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not one of %s, %s", nextStatus.String(), order.Picked, order.Delivered))
	}

	if err := errors.Join(orderID.Validate(), statusErr); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		userID:     userID,
		orderID:    orderID,
		nextStatus: nextStatus,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

func (c UpdateOrderStatusCommand) UserID() kernel.UUID {
	return c.userID
}

func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderStatusCommand) NextStatus() order.Status {
	return c.nextStatus
}

func (c UpdateOrderStatusCommand) IsAuthenticated() bool {
	return !c.userID.IsZero()
}
