// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the runner dispatch system.
// It implements business logic that doesn't naturally belong to a single
// aggregate root.
//
// The package includes:
//   - DispatchPlanner: a pure domain service that distributes a slot's pending
//     orders across the available runners in round-robin order
//
// Domain services coordinate between aggregates following Domain-Driven Design
// principles; persistence and notification side effects stay in the
// application layer.
package services
