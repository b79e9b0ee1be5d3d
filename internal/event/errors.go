package event

import "errors"

// Sentinel errors for the event bus.
var (
	// ErrBusClosed is returned when operations are attempted on a closed bus.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrInvalidTopic is returned when an event tag is empty, malformed, or
	// contains wildcard segments.
	ErrInvalidTopic = errors.New("invalid event topic")

	// ErrInvalidPattern is returned when a subscription pattern is empty or
	// malformed.
	ErrInvalidPattern = errors.New("invalid subscription pattern")

	// ErrNilHandler is returned when a nil handler is registered.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrPayloadType is returned by handlers when an envelope's payload does
	// not match the type fixed by its topic. The bus logs and discards it
	// like any other handler error.
	ErrPayloadType = errors.New("payload does not match topic")
)
