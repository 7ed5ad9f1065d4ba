// Package servers holds the transport types, the ServerInterface and the echo
// bindings for the API described by openapi.yaml.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes    = "bearerAuth.Scopes"
	SessionCookieScopes = "sessionCookie.Scopes"
)

// Defines values for StatusUpdateStatus.
const (
	Delivered StatusUpdateStatus = "delivered"
	Picked    StatusUpdateStatus = "picked"
)

// AvailableOrder defines model for AvailableOrder.
type AvailableOrder struct {
	CreatedAt time.Time          `json:"createdAt"`
	Id        openapi_types.UUID `json:"id"`
}

// CreatedOrder defines model for CreatedOrder.
type CreatedOrder struct {
	Error   bool               `json:"error"`
	Id      openapi_types.UUID `json:"id"`
	Message string             `json:"message"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Result defines model for Result.
type Result struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// StatusHistoryEntry defines model for StatusHistoryEntry.
type StatusHistoryEntry struct {
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	Status StatusUpdateStatus `json:"status"`
}

// StatusUpdateStatus defines model for StatusUpdate.Status.
type StatusUpdateStatus string

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// UpdateOrderStatusJSONRequestBody defines body for UpdateOrderStatus for application/json ContentType.
type UpdateOrderStatusJSONRequestBody = StatusUpdate
