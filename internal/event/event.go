package event

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/commonweal/commonweal/internal/event/topic"
)

// Source identifies what kind of actor produced an event.
type Source string

// Recognized event sources. Source is informational metadata only; the bus
// never routes on it.
const (
	// SourceUser marks events originating from a user action.
	SourceUser Source = "user"

	// SourceSystem marks events originating from internal orchestration.
	SourceSystem Source = "system"

	// SourceAPI marks events originating from a data-store collaborator.
	SourceAPI Source = "api"
)

// Envelope is a single event instance as delivered to handlers.
// Envelopes are immutable once constructed: the bus builds them at emission
// time and handlers must not retain or modify them.
type Envelope struct {
	// ID is an opaque unique identifier for this event instance.
	ID string

	// Topic is the event tag. It fixes the concrete type of Payload.
	Topic topic.Topic

	// Timestamp is when the event was emitted. It is informational; the bus
	// never orders on it.
	Timestamp time.Time

	// Source identifies the emitting actor kind.
	Source Source

	// UserID optionally identifies the acting user.
	UserID string

	// CorrelationID links a "*.requested" event to its outcome event. The
	// state container uses it to discard stale responses from superseded
	// requests.
	CorrelationID string

	// Payload carries the event data. Its concrete type is determined by
	// Topic; handlers narrow it with As.
	Payload any
}

// As narrows an envelope's payload to the concrete type fixed by its topic.
// Handlers must check the second return value before using the payload; a
// false return is a malformed emission that should be logged and discarded.
func As[T any](e Envelope) (T, bool) {
	v, ok := e.Payload.(T)
	return v, ok
}

// NewID generates an opaque unique identifier. It is used for event IDs and
// for the correlation tokens generated at "*.requested" time.
func NewID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand is effectively infallible; fall back to a
		// timestamp-derived ID rather than failing emission.
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
