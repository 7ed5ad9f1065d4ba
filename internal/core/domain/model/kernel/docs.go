// Package kernel holds the value objects shared by every aggregate of the
// dispatch domain. Today that is the UUID identifier used for orders, agents,
// users and status records.
package kernel
