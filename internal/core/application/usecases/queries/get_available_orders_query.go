// Package queries holds the read side: guarded query values and handlers that
// read straight from the database with raw SQL, bypassing the aggregates.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
	"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
)

// GetAvailableOrdersQuery lists orders no agent has claimed yet. The dashboard
// loads it once and then follows dashboard:available:update for changes.
type GetAvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetAvailableOrdersQuery() GetAvailableOrdersQuery {
	return GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

type GetAvailableOrdersQueryResponse struct {
	ID        kernel.UUID `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
}
