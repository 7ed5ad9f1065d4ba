// Package agentrepo stores the user to delivery agent mapping. Agents are
// added by the admin CLI and read on every dispatch command to resolve the
// caller's role.
package agentrepo

import (
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO is the agents row. A user holds at most one agent role, which the
// unique index on user_id enforces.
//
// Example row:
//
//	id      | 7d0c2a4e-1f3b-4c8d-9e2a-5b6c7d8e9f01
//	user_id | 3e4f5a6b-7c8d-4e9f-8a0b-1c2d3e4f5a6b
type AgentDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
}

// TableName pins the table to "agents".
func (AgentDTO) TableName() string {
	return "agents"
}

func fromDomain(a *agent.Agent) AgentDTO {
	return AgentDTO{
		ID:     a.ID().Bytes(),
		UserID: a.UserID().Bytes(),
	}
}

// toDomain goes through agent.NewAgent so a row with a nil id is rejected.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	return agent.NewAgent(id, userID)
}
