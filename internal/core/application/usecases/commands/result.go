package commands

import "fmt"

// Kind classifies the outcome of a dispatch command.
type Kind int

const (
	KindOK Kind = iota
	KindNotAuthenticated
	KindNotAuthorized
	KindNotFound
	KindInvalidTransition
	KindTransactionFailed
	KindInvalidRequest
)

// KindAlreadyTaken shares KindNotFound: a claimer cannot tell a missing order
// from one another agent already holds.
const KindAlreadyTaken = KindNotFound

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotAuthenticated:
		return "not_authenticated"
	case KindNotAuthorized:
		return "not_authorized"
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindTransactionFailed:
		return "transaction_failed"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

const (
	MsgNotAuthenticated     = "Not Authenticated"
	MsgNotAuthorized        = "Not Authorized"
	MsgNotAuthorizedAsAgent = "Not Authorized as Delivery Agent"
	MsgOrderUnavailable     = "Invalid Order ID OR Order Already Taken"
	MsgOrderNotFound        = "Order not found"
	MsgOrderAccepted        = "Order Accepted Successfully"
	MsgStatusUpdated        = "Order status updated successfully"
	MsgOrderCreated         = "Order created successfully"
	MsgTransactionFailed    = "Database transaction failed"
	msgTransitionNotAllowed = "Cannot change from %s to %s"
)

// Result is what a command reports back to its caller. It serializes to the
// {"error": bool, "message": string} shape clients expect.
type Result struct {
	Kind    Kind   `json:"-"`
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func succeeded(message string) Result {
	return Result{Kind: KindOK, Message: message}
}

func failed(kind Kind, message string) Result {
	return Result{Kind: kind, Error: true, Message: message}
}

func (r Result) OK() bool {
	return r.Kind == KindOK
}
