package statusrepo

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormStatusRepository implements ports.StatusRepository using GORM.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository returns a repository that appends through db.
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// Add appends one history entry. It only ever inserts, so a record id that
// already exists fails with the driver's unique violation.
//
// Example:
//
//	record, err := order.RecordFor(o)
//	if err != nil {
//	    return err
//	}
//	err = repo.Add(ctx, record)
func (r *GormStatusRepository) Add(ctx context.Context, record order.StatusRecord) error {
	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}
