// Package pendingorder contains the PendingOrder aggregate: an order that has
// passed payment verification and is waiting to be dispatched to a runner.
//
// The aggregate derives its delivery timeslot at construction and tracks a
// single assigned flag. The flag only ever flips together with the assignment
// ledger: forward in the dispatcher's per-order transaction, backward in the
// bulk reset that also truncates the ledger.
package pendingorder
