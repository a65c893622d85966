// Package kernel contains shared value objects used across the domain model.
//
// The package holds primitives that do not belong to any single aggregate:
// currently the Date value object that keys availability records, assignment
// ledger rows and dispatch runs. Value objects in this package are immutable,
// validated at construction, and safe for concurrent use.
package kernel
