// Package order holds the Order aggregate and its status state machine.
//
// An order is created unassigned, claimed exactly once by an agent and then
// advanced by that agent through the fixed progression
//
//	created -> assigned -> picked -> delivered
//
// The agent link is write-once: AssignTo refuses an order that already has an
// agent and nothing ever clears it. Every state change records a domain event
// on the aggregate; the application layer publishes them only after the
// surrounding transaction has committed.
package order
