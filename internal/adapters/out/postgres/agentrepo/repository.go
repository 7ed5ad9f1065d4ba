package agentrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgentRepository implements ports.AgentRepository using GORM. Lookups
// run on the connection handed to the constructor, which inside a unit of work
// is the open transaction.
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository returns a repository bound to db.
//
// Example:
//
//	agents := agentrepo.NewGormAgentRepository(gormDB)
//	err := agents.Add(ctx, a)
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Add grants the agent role described by aggregate. The aggregate is validated
// first. Granting a second role to the same user violates the unique index on
// user_id and returns the driver error unchanged.
//
// Example:
//
//	a, err := agent.NewAgent(kernel.NewUUID(), userID)
//	if err != nil {
//	    return err
//	}
//	if err = agents.Add(ctx, a); err != nil {
//	    return fmt.Errorf("grant agent role: %w", err)
//	}
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByUserID returns the agent role held by userID. A user without the role
// gets errs.ErrObjectNotFound, which the command handlers turn into
// NotAuthorized.
func (r *GormAgentRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", userID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
