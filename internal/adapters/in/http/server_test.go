package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/in/sse"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockAssignHandler struct{ mock.Mock }

func (m *MockAssignHandler) Handle(ctx context.Context, cmd commands.AssignOrderToSelfCommand) commands.Result {
	return m.Called(ctx, cmd).Get(0).(commands.Result)
}

type MockUpdateStatusHandler struct{ mock.Mock }

func (m *MockUpdateStatusHandler) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) commands.Result {
	return m.Called(ctx, cmd).Get(0).(commands.Result)
}

type MockAvailableOrdersHandler struct{ mock.Mock }

func (m *MockAvailableOrdersHandler) Handle(
	ctx context.Context,
	q queries.GetAvailableOrdersQuery,
) ([]queries.GetAvailableOrdersQueryResponse, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).([]queries.GetAvailableOrdersQueryResponse)
	return res, args.Error(1)
}

type MockStatusHistoryHandler struct{ mock.Mock }

func (m *MockStatusHistoryHandler) Handle(
	ctx context.Context,
	q queries.GetOrderStatusHistoryQuery,
) ([]queries.GetOrderStatusHistoryQueryResponse, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).([]queries.GetOrderStatusHistoryQueryResponse)
	return res, args.Error(1)
}

type MockStreamServer struct{ mock.Mock }

func (m *MockStreamServer) Serve(ctx context.Context, stream sse.Stream, topics ...string) error {
	args := m.Called(ctx, stream, topics)
	if fn, ok := args.Get(0).(func(sse.Stream) error); ok {
		return fn(stream)
	}
	return args.Error(0)
}

type MockIdentityResolver struct{ mock.Mock }

func (m *MockIdentityResolver) Resolve(ctx context.Context, token string) (kernel.UUID, error) {
	args := m.Called(ctx, token)
	id, _ := args.Get(0).(kernel.UUID)
	return id, args.Error(1)
}

type fixture struct {
	create    *MockCreateOrderHandler
	assign    *MockAssignHandler
	update    *MockUpdateStatusHandler
	available *MockAvailableOrdersHandler
	history   *MockStatusHistoryHandler
	streams   *MockStreamServer
	resolver  *MockIdentityResolver
	e         *echo.Echo
}

const agentToken = "agent-token"

func newFixture(t *testing.T) (fixture, kernel.UUID) {
	t.Helper()
	f := fixture{
		create:    new(MockCreateOrderHandler),
		assign:    new(MockAssignHandler),
		update:    new(MockUpdateStatusHandler),
		available: new(MockAvailableOrdersHandler),
		history:   new(MockStatusHistoryHandler),
		streams:   new(MockStreamServer),
		resolver:  new(MockIdentityResolver),
	}
	logger := slog.New(slog.DiscardHandler)

	server := httpadapter.NewServer(f.create, f.assign, f.update, f.available, f.history, f.streams, logger)
	e, err := httpadapter.NewRouter(server, f.resolver, logger)
	require.NoError(t, err)
	f.e = e

	userID := kernel.NewUUID()
	f.resolver.On("Resolve", mock.Anything, agentToken).Return(userID, nil).Maybe()
	return f, userID
}

func (f fixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	f, _ := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestSwaggerDoc(t *testing.T) {
	f, _ := newFixture(t)

	rec := f.do(http.MethodGet, "/swagger/doc.json", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/orders/{order_id}/assign")
}

func TestAssignOrderToSelf_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		result commands.Result
		status int
	}{
		{"accepted", commands.Result{Kind: commands.KindOK, Message: commands.MsgOrderAccepted}, http.StatusOK},
		{"not authenticated", commands.Result{Kind: commands.KindNotAuthenticated, Error: true, Message: commands.MsgNotAuthenticated}, http.StatusUnauthorized},
		{"not an agent", commands.Result{Kind: commands.KindNotAuthorized, Error: true, Message: commands.MsgNotAuthorized}, http.StatusForbidden},
		{"already taken", commands.Result{Kind: commands.KindAlreadyTaken, Error: true, Message: commands.MsgOrderUnavailable}, http.StatusConflict},
		{"storage failure", commands.Result{Kind: commands.KindTransactionFailed, Error: true, Message: commands.MsgTransactionFailed}, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, userID := newFixture(t)
			orderID := kernel.NewUUID()

			f.assign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignOrderToSelfCommand) bool {
				return cmd.OrderID().IsEqual(orderID) && cmd.UserID().IsEqual(userID)
			})).Return(tc.result).Once()

			rec := f.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/assign", "", agentToken)

			assert.Equal(t, tc.status, rec.Code)
			body := decodeResult(t, rec)
			assert.Equal(t, tc.result.Error, body["error"])
			assert.Equal(t, tc.result.Message, body["message"])
			f.assign.AssertExpectations(t)
		})
	}
}

func TestAssignOrderToSelf_AnonymousCallerReachesHandler(t *testing.T) {
	f, _ := newFixture(t)
	f.assign.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AssignOrderToSelfCommand) bool {
		return !cmd.IsAuthenticated()
	})).Return(commands.Result{Kind: commands.KindNotAuthenticated, Error: true, Message: commands.MsgNotAuthenticated}).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/assign", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.assign.AssertExpectations(t)
}

func TestAssignOrderToSelf_MalformedOrderID(t *testing.T) {
	f, _ := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/orders/not-a-uuid/assign", "", agentToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.assign.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		result commands.Result
		status int
	}{
		{"updated", commands.Result{Kind: commands.KindOK, Message: commands.MsgStatusUpdated}, http.StatusOK},
		{"not found", commands.Result{Kind: commands.KindNotFound, Error: true, Message: commands.MsgOrderNotFound}, http.StatusNotFound},
		{"other agent", commands.Result{Kind: commands.KindNotAuthorized, Error: true, Message: commands.MsgNotAuthorized}, http.StatusForbidden},
		{"bad transition", commands.Result{Kind: commands.KindInvalidTransition, Error: true, Message: "Cannot change from assigned to delivered"}, http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, userID := newFixture(t)
			orderID := kernel.NewUUID()

			f.update.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderStatusCommand) bool {
				return cmd.OrderID().IsEqual(orderID) && cmd.UserID().IsEqual(userID) && cmd.NextStatus() == order.Picked
			})).Return(tc.result).Once()

			rec := f.do(http.MethodPut, "/api/v1/orders/"+orderID.String()+"/status", `{"status":"picked"}`, agentToken)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.result.Message, decodeResult(t, rec)["message"])
			f.update.AssertExpectations(t)
		})
	}
}

func TestUpdateOrderStatus_RejectsUnsettableStatus(t *testing.T) {
	f, _ := newFixture(t)

	rec := f.do(http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", `{"status":"created"}`, agentToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, true, decodeResult(t, rec)["error"])
	f.update.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatus_MalformedBody(t *testing.T) {
	f, _ := newFixture(t)

	rec := f.do(http.MethodPut, "/api/v1/orders/"+kernel.NewUUID().String()+"/status", `{"status":`, agentToken)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder(t *testing.T) {
	f, _ := newFixture(t)
	f.create.On("Handle", mock.Anything, mock.AnythingOfType("commands.CreateOrderCommand")).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", "", agentToken)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResult(t, rec)
	assert.Equal(t, commands.MsgOrderCreated, body["message"])
	_, err := kernel.UUIDFromString(body["id"].(string))
	assert.NoError(t, err)
}

func TestCreateOrder_RequiresAuthentication(t *testing.T) {
	f, _ := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/orders", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestCreateOrder_HandlerFailure(t *testing.T) {
	f, _ := newFixture(t)
	f.create.On("Handle", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", "", agentToken)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, commands.MsgTransactionFailed, decodeResult(t, rec)["message"])
}

func TestGetAvailableOrders(t *testing.T) {
	f, _ := newFixture(t)
	id := kernel.NewUUID()
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	f.available.On("Handle", mock.Anything, mock.Anything).
		Return([]queries.GetAvailableOrdersQueryResponse{{ID: id, CreatedAt: at}}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/available", "", agentToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, id.String(), body[0]["id"])
	assert.Equal(t, "2025-05-01T10:00:00Z", body[0]["createdAt"])
}

func TestGetOrderStatusHistory(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f, _ := newFixture(t)
		f.history.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetOrderStatusHistoryQueryResponse{
			{Status: "picked", CreatedAt: time.Now().UTC()},
		}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String()+"/history", "", agentToken)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"picked"`)
	})

	t.Run("unknown order", func(t *testing.T) {
		f, _ := newFixture(t)
		f.history.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("order", "x")).Once()

		rec := f.do(http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String()+"/history", "", agentToken)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestStreamDashboard_RequiresAuthentication(t *testing.T) {
	f, _ := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/sse/dashboard", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, commands.MsgNotAuthenticated, decodeResult(t, rec)["message"])
	f.streams.AssertNotCalled(t, "Serve", mock.Anything, mock.Anything, mock.Anything)
}

func TestStreamDashboard_SubscribesDashboardTopic(t *testing.T) {
	f, _ := newFixture(t)
	f.streams.On("Serve", mock.Anything, mock.Anything, []string{"dashboard:available:update"}).
		Return(func(s sse.Stream) error {
			return s.Send([]byte("data: {\"type\":\"ADD\"}\n\n"))
		}).Once()

	rec := f.do(http.MethodGet, "/api/v1/sse/dashboard", "", agentToken)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "data: {\"type\":\"ADD\"}\n\n", rec.Body.String())
	f.streams.AssertExpectations(t)
}

func TestStreamOrderStatus_SubscribesOrderTopic(t *testing.T) {
	f, _ := newFixture(t)
	orderID := kernel.NewUUID()
	f.streams.On("Serve", mock.Anything, mock.Anything, []string{"order:" + orderID.String()}).
		Return(errors.New("client went away")).Once()

	rec := f.do(http.MethodGet, "/api/v1/sse/orders/"+orderID.String(), "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	f.streams.AssertExpectations(t)
}
