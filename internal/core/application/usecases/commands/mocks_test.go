package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) GetUnassignedForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func (m *MockOrderRepository) GetAssignedForUpdate(
	ctx context.Context,
	id, agentID kernel.UUID,
) (*order.Order, error) {
	args := m.Called(ctx, id, agentID)
	return orderOrNil(args.Get(0)), args.Error(1)
}

func orderOrNil(v any) *order.Order {
	if v == nil {
		return nil
	}
	return v.(*order.Order)
}

type MockStatusRepository struct{ mock.Mock }

func (m *MockStatusRepository) Add(ctx context.Context, record order.StatusRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, userID)
	a, _ := args.Get(0).(*agent.Agent)
	return a, args.Error(1)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ MockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDispatchUoW struct{ MockTx }

func (m *MockDispatchUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockDispatchUoW) StatusRepository() ports.StatusRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusRepository)
}

func (m *MockDispatchUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...order.DomainEvent) {
	m.Called(ctx, events)
}

// eventsOfType matches a published batch made of exactly the given event kinds, in order.
func eventsOfType(kinds ...string) any {
	return mock.MatchedBy(func(events []order.DomainEvent) bool {
		if len(events) != len(kinds) {
			return false
		}
		for i, ev := range events {
			if eventKind(ev) != kinds[i] {
				return false
			}
		}
		return true
	})
}

func eventKind(ev order.DomainEvent) string {
	switch ev.(type) {
	case order.CreatedEvent:
		return "created"
	case order.AssignedEvent:
		return "assigned"
	case order.StatusChangedEvent:
		return "status_changed"
	default:
		return "unknown"
	}
}
