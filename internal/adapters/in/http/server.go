package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dispatch/internal/adapters/in/sse"
	"dispatch/internal/core/application/notifications"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/generated/servers"
	"dispatch/internal/pkg/ctxutil"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}

	AssignOrderToSelfHandler interface {
		Handle(ctx context.Context, cmd commands.AssignOrderToSelfCommand) commands.Result
	}

	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) commands.Result
	}

	GetAvailableOrdersHandler interface {
		Handle(ctx context.Context, q queries.GetAvailableOrdersQuery) ([]queries.GetAvailableOrdersQueryResponse, error)
	}

	GetOrderStatusHistoryHandler interface {
		Handle(ctx context.Context, q queries.GetOrderStatusHistoryQuery) ([]queries.GetOrderStatusHistoryQueryResponse, error)
	}

	// StreamServer attaches an event stream to bus topics until the request ends.
	StreamServer interface {
		Serve(ctx context.Context, stream sse.Stream, topics ...string) error
	}
)

// Server implements servers.ServerInterface on top of the dispatch use cases.
type Server struct {
	// Command handlers
	createOrderHandler  CreateOrderHandler
	assignOrderHandler  AssignOrderToSelfHandler
	updateStatusHandler UpdateOrderStatusHandler

	// Query handlers
	availableOrdersHandler GetAvailableOrdersHandler
	statusHistoryHandler   GetOrderStatusHistoryHandler

	streams StreamServer
	logger  *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createOrderHandler CreateOrderHandler,
	assignOrderHandler AssignOrderToSelfHandler,
	updateStatusHandler UpdateOrderStatusHandler,
	availableOrdersHandler GetAvailableOrdersHandler,
	statusHistoryHandler GetOrderStatusHistoryHandler,
	streams StreamServer,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		assignOrderHandler:     assignOrderHandler,
		updateStatusHandler:    updateStatusHandler,
		availableOrdersHandler: availableOrdersHandler,
		statusHistoryHandler:   statusHistoryHandler,
		streams:                streams,
		logger:                 logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	if _, ok := currentUser(ctx); !ok {
		return ctx.JSON(http.StatusUnauthorized, servers.Result{Error: true, Message: commands.MsgNotAuthenticated})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Result{Error: true, Message: err.Error()})
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Create order error", "error", handleErr)
		return ctx.JSON(http.StatusInternalServerError, servers.Result{Error: true, Message: commands.MsgTransactionFailed})
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{
		Id:      orderID.Bytes(),
		Message: commands.MsgOrderCreated,
	})
}

// GetAvailableOrders handles GET /api/v1/orders/available.
func (s *Server) GetAvailableOrders(ctx echo.Context) error {
	orders, err := s.availableOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Available orders query error", "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]servers.AvailableOrder, len(orders))
	for i, o := range orders {
		response[i] = servers.AvailableOrder{Id: o.ID.Bytes(), CreatedAt: o.CreatedAt}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignOrderToSelf handles POST /api/v1/orders/{order_id}/assign.
func (s *Server) AssignOrderToSelf(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Result{Error: true, Message: err.Error()})
	}

	userID, _ := currentUser(ctx)
	cmd, err := commands.NewAssignOrderToSelfCommand(userID, orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Result{Error: true, Message: err.Error()})
	}

	res := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	return ctx.JSON(statusFor(res.Kind, http.StatusConflict), toResult(res))
}

// UpdateOrderStatus handles PUT /api/v1/orders/{order_id}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Result{Error: true, Message: err.Error()})
	}

	var body servers.UpdateOrderStatusJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Result{Error: true, Message: "Invalid request body"})
	}

	userID, _ := currentUser(ctx)
	cmd, err := commands.NewUpdateOrderStatusCommand(userID, orderID, order.Status(body.Status))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Result{Error: true, Message: err.Error()})
	}

	res := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	return ctx.JSON(statusFor(res.Kind, http.StatusNotFound), toResult(res))
}

// GetOrderStatusHistory handles GET /api/v1/orders/{order_id}/history.
func (s *Server) GetOrderStatusHistory(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	query, err := queries.NewGetOrderStatusHistoryQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	history, err := s.statusHistoryHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, servers.Error{Code: http.StatusNotFound, Message: commands.MsgOrderNotFound})
	}
	if err != nil {
		s.logger.ErrorContext(ctx.Request().Context(), "Status history query error", "error", err)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve status history",
		})
	}

	response := make([]servers.StatusHistoryEntry, len(history))
	for i, entry := range history {
		response[i] = servers.StatusHistoryEntry{Status: entry.Status, CreatedAt: entry.CreatedAt}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StreamDashboard handles GET /api/v1/sse/dashboard. Only authenticated
// callers may follow the feed of available orders.
func (s *Server) StreamDashboard(ctx echo.Context) error {
	if _, ok := currentUser(ctx); !ok {
		return ctx.JSON(http.StatusUnauthorized, servers.Result{Error: true, Message: commands.MsgNotAuthenticated})
	}

	return s.stream(ctx, notifications.DashboardTopic)
}

// StreamOrderStatus handles GET /api/v1/sse/orders/{order_id}.
func (s *Server) StreamOrderStatus(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Result{Error: true, Message: err.Error()})
	}

	return s.stream(ctx, notifications.OrderTopic(orderID))
}

func (s *Server) stream(ctx echo.Context, topics ...string) error {
	reqCtx := ctx.Request().Context()
	stream := sse.NewEchoStream(ctx)

	// the response is already committed, so a broken stream is only worth a log line
	if err := s.streams.Serve(reqCtx, stream, topics...); err != nil {
		s.logger.DebugContext(reqCtx, "Event stream closed", "topics", topics, "error", err)
	}
	return nil
}

func currentUser(ctx echo.Context) (kernel.UUID, bool) {
	raw, ok := ctxutil.UserFromContext(ctx.Request().Context())
	if !ok {
		return kernel.UUID{}, false
	}
	userID, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, false
	}
	return userID, true
}

func toResult(res commands.Result) servers.Result {
	return servers.Result{Error: res.Error, Message: res.Message}
}

// statusFor maps a command outcome to an HTTP status. notFound is endpoint
// specific: a failed claim is a conflict, a failed status update a 404.
func statusFor(kind commands.Kind, notFound int) int {
	switch kind {
	case commands.KindOK:
		return http.StatusOK
	case commands.KindNotAuthenticated:
		return http.StatusUnauthorized
	case commands.KindNotAuthorized:
		return http.StatusForbidden
	case commands.KindNotFound:
		return notFound
	case commands.KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case commands.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
