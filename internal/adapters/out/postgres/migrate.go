package postgres

import (
	"dispatch/internal/adapters/out/postgres/agentrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/statusrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the orders, order_statuses and agents tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&statusrepo.OrderStatusDTO{},
		&agentrepo.AgentDTO{},
	)
}
