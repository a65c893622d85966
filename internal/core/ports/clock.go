package ports

import "time"

// Clock abstracts wall-clock access so slot-boundary behavior is
// deterministically testable. Implementations return time in the delivery
// timezone; Location exposes that zone for converting inbound timestamps.
type Clock interface {
	// Now returns the current time in the delivery timezone.
	Now() time.Time

	// Location returns the delivery timezone.
	Location() *time.Location
}
