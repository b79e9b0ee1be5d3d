package event

import "context"

// HandlerFunc is the signature of an event subscriber.
//
// Handlers run synchronously during Emit. A returned error is logged and
// counted but never propagates to the emitter; the same holds for panics.
type HandlerFunc func(ctx context.Context, evt Envelope) error

// FilterFunc is a predicate applied before delivery to a subscription.
// Return true to deliver the event, false to skip it.
type FilterFunc func(evt Envelope) bool

// Stats contains event bus counters.
type Stats struct {
	// Emitted is the total number of events emitted.
	Emitted uint64

	// Delivered is the total number of successful handler deliveries.
	Delivered uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscriptions is the current number of live registrations.
	ActiveSubscriptions int
}
