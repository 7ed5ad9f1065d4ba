package postgres_test

import (
	"context"
	"testing"

	postgresadapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/adapters/out/postgres/statusrepo"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite checks transaction boundaries across the
// order, status history and agent repositories.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgresadapter.Migrate(db))
	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_statuses, agents").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.StatusRepository())
	suite.NotNil(uow1.AgentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "rollback after commit")
	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction, "commit without begin")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndHistoryTogether() {
	ctx := suite.T().Context()
	o := suite.assignedOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(o.TransitionTo(order.Picked))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	rec, err := order.RecordFor(o)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.StatusRepository().Add(ctx, rec))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	got, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Picked, got.Status())

	history := suite.history(o.ID())
	suite.Require().Len(history, 1)
	suite.Equal("picked", history[0].Status)
	suite.True(history[0].CreatedAt.Equal(got.UpdatedAt()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndHistory() {
	ctx := suite.T().Context()
	o := suite.assignedOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(o.TransitionTo(order.Picked))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	rec, _ := order.RecordFor(o)
	suite.Require().NoError(uow.StatusRepository().Add(ctx, rec))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	got, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, got.Status())

	suite.Empty(suite.history(o.ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesBeforeBegin_UseConnection() {
	ctx := suite.T().Context()
	a, err := agent.NewAgent(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.AgentRepository().Add(ctx, a))

	got, err := suite.factory.Create().AgentRepository().GetByUserID(ctx, a.UserID())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(a.ID()))

	_, err = uow.AgentRepository().GetByUserID(ctx, kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) assignedOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(o.AssignTo(kernel.NewUUID()))
	o.ClearDomainEvents()
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) history(orderID kernel.UUID) []statusrepo.OrderStatusDTO {
	var rows []statusrepo.OrderStatusDTO
	suite.Require().NoError(suite.db.Where("order_id = ?", orderID.Bytes()).Order("created_at").Find(&rows).Error)
	return rows
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
