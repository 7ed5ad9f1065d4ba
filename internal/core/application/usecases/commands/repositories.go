// Package commands contains the write operations of the dispatch service.
// Every command follows the same shape: a guarded command value built by its
// constructor, and a handler that validates it, runs the change inside one
// unit of work and publishes the aggregate's domain events after commit.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StatusRepoFactory interface {
		StatusRepository() ports.StatusRepository
	}

	AgentRepoFactory interface {
		AgentRepository() ports.AgentRepository
	}

	// OrderUoW is used by commands that only write orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DispatchUoW spans orders, their status history and the agent lookup.
	//
	// Example:
	//   uow := factory.Create()
	//   agent, err := uow.AgentRepository().GetByUserID(ctx, userID)
	//   err = uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//   o, err := uow.OrderRepository().GetUnassignedForUpdate(ctx, orderID)
	//   // ... mutate, Update, Commit
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		StatusRepoFactory
		AgentRepoFactory
	}

	DispatchUoWFactory interface {
		Create() DispatchUoW
	}
)
