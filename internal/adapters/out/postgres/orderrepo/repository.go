package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM. It is
// bound to whatever *gorm.DB it is given; the unit of work passes its open
// transaction, so the locking reads below only hold their locks until that
// transaction ends.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository returns a repository that runs every statement on db.
//
// Example:
//
//	repo := orderrepo.NewGormOrderRepository(tx)
//	o, err := repo.GetUnassignedForUpdate(ctx, orderID)
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order. The aggregate is validated first; a duplicate id
// surfaces as the driver's unique violation.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes agent, status and updated_at of an existing order and returns
// gorm.ErrRecordNotFound when no row has the aggregate's id.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get reads an order without locking it. A missing row is reported as
// errs.ErrObjectNotFound.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, notFound(err, id)
	}

	return toDomain(dto)
}

// GetUnassignedForUpdate locks the order row if it has no agent yet. A claimer
// that was blocked on the lock re-checks the predicate once the holder commits
// and then finds nothing.
func (r *GormOrderRepository) GetUnassignedForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND agent_id IS NULL", id.Bytes()).
		First(&dto).Error
	if err != nil {
		return nil, notFound(err, id)
	}

	return toDomain(dto)
}

// GetAssignedForUpdate locks the order row if agentID holds it. An order that
// exists but belongs to someone else is reported exactly like a missing one,
// errs.ErrObjectNotFound; callers that need to tell the two apart follow up
// with Get.
//
// Example:
//
//	o, err := repo.GetAssignedForUpdate(ctx, cmd.OrderID(), agent.ID())
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    _, err = repo.Get(ctx, cmd.OrderID())
//	}
func (r *GormOrderRepository) GetAssignedForUpdate(
	ctx context.Context,
	id, agentID kernel.UUID,
) (*order.Order, error) {
	if err := errors.Join(id.Validate(), agentID.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND agent_id = ?", id.Bytes(), agentID.Bytes()).
		First(&dto).Error
	if err != nil {
		return nil, notFound(err, id)
	}

	return toDomain(dto)
}

func notFound(err error, id kernel.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return err
}
