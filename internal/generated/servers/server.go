package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/available)
	GetAvailableOrders(ctx echo.Context) error
	// (POST /api/v1/orders/{order_id}/assign)
	AssignOrderToSelf(ctx echo.Context, orderId OrderId) error
	// (GET /api/v1/orders/{order_id}/history)
	GetOrderStatusHistory(ctx echo.Context, orderId OrderId) error
	// (PUT /api/v1/orders/{order_id}/status)
	UpdateOrderStatus(ctx echo.Context, orderId OrderId) error
	// (GET /api/v1/sse/dashboard)
	StreamDashboard(ctx echo.Context) error
	// (GET /api/v1/sse/orders/{order_id})
	StreamOrderStatus(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	ctx.Set(SessionCookieScopes, []string{})

	return w.Handler.CreateOrder(ctx)
}

// GetAvailableOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetAvailableOrders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	ctx.Set(SessionCookieScopes, []string{})

	return w.Handler.GetAvailableOrders(ctx)
}

// AssignOrderToSelf converts echo context to params.
func (w *ServerInterfaceWrapper) AssignOrderToSelf(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})
	ctx.Set(SessionCookieScopes, []string{})

	return w.Handler.AssignOrderToSelf(ctx, orderId)
}

// GetOrderStatusHistory converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderStatusHistory(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})
	ctx.Set(SessionCookieScopes, []string{})

	return w.Handler.GetOrderStatusHistory(ctx, orderId)
}

// UpdateOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})
	ctx.Set(SessionCookieScopes, []string{})

	return w.Handler.UpdateOrderStatus(ctx, orderId)
}

// StreamDashboard converts echo context to params.
func (w *ServerInterfaceWrapper) StreamDashboard(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	ctx.Set(SessionCookieScopes, []string{})

	return w.Handler.StreamDashboard(ctx)
}

// StreamOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) StreamOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	return w.Handler.StreamOrderStatus(ctx, orderId)
}

func bindOrderID(ctx echo.Context) (OrderId, error) {
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "order_id", ctx.Param("order_id"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter order_id: %s", err))
	}

	return orderId, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the handlers, each prefixed with baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/available", wrapper.GetAvailableOrders)
	router.POST(baseURL+"/api/v1/orders/:order_id/assign", wrapper.AssignOrderToSelf)
	router.GET(baseURL+"/api/v1/orders/:order_id/history", wrapper.GetOrderStatusHistory)
	router.PUT(baseURL+"/api/v1/orders/:order_id/status", wrapper.UpdateOrderStatus)
	router.GET(baseURL+"/api/v1/sse/dashboard", wrapper.StreamDashboard)
	router.GET(baseURL+"/api/v1/sse/orders/:order_id", wrapper.StreamOrderStatus)
}
