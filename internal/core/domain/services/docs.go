// Package services holds domain logic that spans the Order and Agent aggregates.
//
// OrderDispatcher decides whether an agent may claim an order and whether the
// agent holding an order may move it to a requested status. It has no I/O; the
// command handlers load the aggregates inside a transaction and hand them over.
package services
