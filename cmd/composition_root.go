package cmd

import (
	"log/slog"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/sse"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/redis/sessions"
	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/eventbus"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *eventbus.Bus
	sessions   *sessions.Store
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, redisClient redis.UniversalClient, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus: eventbus.New(
			eventbus.WithQueueSize(config.EventQueueSize),
			eventbus.WithLogger(logger),
		),
		sessions: sessions.NewStore(redisClient, config.SessionKeyPrefix),
		logger:   logger,
	}
}

// Close releases every bus subscription. Open event streams end with it.
func (c *CompositionRoot) Close() {
	c.bus.Close()
}

// EventBus is the process-wide bus shared by publishers and event streams.
func (c *CompositionRoot) EventBus() *eventbus.Bus {
	return c.bus
}

func (c *CompositionRoot) CreateDomainEventPublisher() ports.DomainEventPublisher {
	return notifications.NewPublisher(c.bus, c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.CreateDomainEventPublisher())
}

func (c *CompositionRoot) CreateAssignOrderToSelfCommandHandler() commands.AssignOrderToSelfCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderToSelfCommandHandler(f, c.CreateDomainEventPublisher(), c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.CreateDomainEventPublisher(), c.logger)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusHistoryQueryHandler() queries.GetOrderStatusHistoryQueryHandler {
	return queries.NewGetOrderStatusHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSubscriptionGateway() *sse.Gateway {
	return sse.NewGateway(c.bus,
		sse.WithHeartbeat(c.config.SSEHeartbeat),
		sse.WithLogger(c.logger),
	)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAssignOrderToSelfCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetOrderStatusHistoryQueryHandler(),
		c.CreateSubscriptionGateway(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return httpadapter.NewRouter(c.CreateHTTPServer(), c.sessions, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.bus, c.config.BusStatsSchedule, c.logger)
}

// Sessions is the session store used by the admin commands to issue tokens.
func (c *CompositionRoot) Sessions() *sessions.Store {
	return c.sessions
}

// AgentRepository works outside of any transaction; admin commands use it to
// grant the agent role.
func (c *CompositionRoot) AgentRepository() ports.AgentRepository {
	return c.uowFactory.Create().AgentRepository()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}
