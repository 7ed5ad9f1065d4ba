package kernel

import (
	"fmt"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero (nil) UUID.
// Seeing it means a UUID was declared but never built through NewUUID,
// UUIDFromString or UUIDFromBytes.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, agents and users. It wraps github.com/google/uuid so
// the domain never depends on the library type directly, and it is immutable,
// which makes it safe to share between goroutines and to use as a map key.
//
// The zero value is invalid. Build one with NewUUID for new aggregates, with
// UUIDFromString or ParseID for identifiers arriving from outside, or with
// UUIDFromBytes when restoring rows.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	agentID, err := kernel.ParseID("agentId", r.PathValue("agentId"))
//	if err != nil {
//	    return err
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (v4) identifier. The result always passes Validate.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID())
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses any format accepted by github.com/google/uuid, such as
// "0b9f1c7e-6f2d-4a57-9c43-2f4a3e5d8b10" or the same value wrapped in braces
// or prefixed with "urn:uuid:". The nil UUID parses successfully; callers that
// need a usable identifier should follow with Validate or use ParseID.
//
// Example:
//
//	id, err := kernel.UUIDFromString("0b9f1c7e-6f2d-4a57-9c43-2f4a3e5d8b10")
//	if err != nil {
//	    return fmt.Errorf("order id: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from 16 raw bytes, rejecting the nil UUID.
// The repositories use it to turn uuid columns back into domain identifiers.
//
// Example:
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
//	if err != nil {
//	    return nil, err
//	}
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}
	return newID, nil
}

// ParseID parses an identifier coming from outside the domain (path params,
// session values). Empty input yields a ValueIsRequiredError, malformed or nil
// input a ValueIsInvalidError, both naming paramName, so the HTTP layer can
// answer 400 with a message that points at the offending field.
//
// Example:
//
//	orderID, err := kernel.ParseID("orderId", orderIdParam)
//	if errors.Is(err, errs.ErrValueIsRequired) || errors.Is(err, errs.ErrValueIsInvalid) {
//	    return badRequest(err)
//	}
func ParseID(paramName, s string) (UUID, error) {
	if strings.TrimSpace(s) == "" {
		return UUID{}, errs.NewValueIsRequiredError(paramName)
	}
	id, err := UUIDFromString(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	if err = id.Validate(); err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

// String returns the canonical lowercase form, for example
// "0b9f1c7e-6f2d-4a57-9c43-2f4a3e5d8b10". The zero value renders as
// "00000000-0000-0000-0000-000000000000". It is the form used in logs, event
// payloads and topic names.
//
// Example:
//
//	logger.Info("Order assigned", "order_id", o.ID().String())
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns a copy of the underlying google/uuid value, which is what the
// gorm DTOs persist. uuid.UUID is an array, so the caller cannot mutate u.
//
// Example:
//
//	dto := OrderDTO{ID: o.ID().Bytes()}
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether u and other hold the same identifier. Two zero values
// are equal.
//
// Example:
//
//	if o.AgentID() != nil && o.AgentID().IsEqual(a.ID()) {
//	    // a holds o
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether u is the nil UUID, which is what an unset UUID field
// or an anonymous caller's user id looks like.
//
// Example:
//
//	if cmd.UserID().IsZero() {
//	    return failed(KindNotAuthenticated, MsgNotAuthenticated)
//	}
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value and nil
// otherwise. Aggregates call it on every identifier they are built from.
//
// Example:
//
//	if err := errors.Join(id.Validate(), agentID.Validate()); err != nil {
//	    return nil, err
//	}
func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText lets UUID fields render as plain strings in JSON responses and
// event payloads instead of as a nested object.
//
// Example:
//
//	json.Marshal(struct{ OrderID kernel.UUID }{o.ID()})
//	// {"OrderID":"0b9f1c7e-6f2d-4a57-9c43-2f4a3e5d8b10"}
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}

// UnmarshalText is the inverse of MarshalText. It accepts what UUIDFromString
// accepts and leaves u untouched on error.
func (u *UUID) UnmarshalText(text []byte) error {
	parsed, err := UUIDFromString(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
