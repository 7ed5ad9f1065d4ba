// Package agent models the delivery agent: the role a user must hold to claim
// and advance orders. Agents are provisioned outside the dispatch core and are
// read-only here.
package agent

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
)

var ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")

// Agent links a user identity to the delivery agent role, one to one.
type Agent struct {
	id            kernel.UUID
	userID        kernel.UUID
	isConstructed bool
}

func NewAgent(id, userID kernel.UUID) (*Agent, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	return &Agent{id: id, userID: userID, isConstructed: true}, nil
}

func (a *Agent) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAgentIsNotConstructed
	}
	return nil
}

func (a *Agent) ID() kernel.UUID {
	return a.id
}

func (a *Agent) UserID() kernel.UUID {
	return a.userID
}
