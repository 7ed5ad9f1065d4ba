package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderStatusHistoryQueryIsNotConstructed = errors.New(
	"GetOrderStatusHistoryQuery must be created via NewGetOrderStatusHistoryQuery constructor",
)

// GetOrderStatusHistoryQuery reads the recorded status changes of one order.
type GetOrderStatusHistoryQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderStatusHistoryQuery(orderID kernel.UUID) (GetOrderStatusHistoryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusHistoryQuery{}, err
	}
	return GetOrderStatusHistoryQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusHistoryQueryIsNotConstructed)
}

func (q GetOrderStatusHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderStatusHistoryQueryResponse struct {
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
