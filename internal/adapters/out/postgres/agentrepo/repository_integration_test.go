package agentrepo_test

import (
	"context"
	"testing"

	postgresadapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/agentrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type AgentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *agentrepo.GormAgentRepository
}

func (suite *AgentRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(postgresadapter.Migrate(db))
}

func (suite *AgentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE agents").Error)
	suite.repository = agentrepo.NewGormAgentRepository(suite.db)
}

func (suite *AgentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGetByUserID_Existing() {
	ctx := suite.T().Context()
	a, err := agent.NewAgent(kernel.NewUUID(), kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, a))

	got, err := suite.repository.GetByUserID(ctx, a.UserID())

	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(a.ID()))
	suite.True(got.UserID().IsEqual(a.UserID()))
}

func (suite *AgentRepositoryIntegrationTestSuite) TestGetByUserID_NotAnAgent() {
	_, err := suite.repository.GetByUserID(suite.T().Context(), kernel.NewUUID())

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AgentRepositoryIntegrationTestSuite) TestAdd_SecondRoleForSameUserFails() {
	ctx := suite.T().Context()
	userID := kernel.NewUUID()
	first, _ := agent.NewAgent(kernel.NewUUID(), userID)
	second, _ := agent.NewAgent(kernel.NewUUID(), userID)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Error(suite.repository.Add(ctx, second))
}

func TestAgentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AgentRepositoryIntegrationTestSuite))
}
