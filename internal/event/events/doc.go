// Package events defines the closed event taxonomy carried by the bus.
//
// Tags are grouped into per-domain triads: a "*.requested" event carrying
// the operation's input, a success variant carrying the resulting entity or
// collection ("*.success", "*.created", "*.updated", "*.deleted"), and a
// "*.failed" variant carrying OperationFailed. Sign-out failure is the one
// exception; it carries the richer SignOutFailed shape so the caller can
// distinguish retryable from terminal failures.
//
// Each tag fixes the concrete payload type named alongside it. Handlers
// narrow the type-erased payload with event.As and discard envelopes that
// fail the check.
package events
