package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a single database transaction. Repositories obtained after
// Begin run inside it; before Begin they run on the plain connection.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active, which makes it safe
	// to defer after a successful Commit.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	StatusRepository() StatusRepository
	AgentRepository() AgentRepository
}
