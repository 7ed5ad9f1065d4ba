package queries

import (
	"context"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderStatusHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatusHistoryQueryHandler(db *gorm.DB) GetOrderStatusHistoryQueryHandler {
	return GetOrderStatusHistoryQueryHandler{db: db}
}

// Handle returns the history oldest first. An existing order that never
// changed status has an empty history; an unknown order is
// *errs.ObjectNotFoundError.
func (h GetOrderStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusHistoryQuery,
) ([]GetOrderStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID()

	var exists bool
	err := db.Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, orderID.Bytes()).
		Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}

	history := make([]GetOrderStatusHistoryQueryResponse, 0)

	rows, err := db.Raw(`
		SELECT
			status,
			created_at
		FROM order_statuses
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderStatusHistoryQueryResponse
		if err = rows.Scan(&entry.Status, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
