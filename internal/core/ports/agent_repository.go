package ports

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
)

// AgentRepository resolves the agent role of a user.
type AgentRepository interface {
	Add(ctx context.Context, aggregate *agent.Agent) error

	// GetByUserID returns *errs.ObjectNotFoundError when the user is not an agent.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error)
}
