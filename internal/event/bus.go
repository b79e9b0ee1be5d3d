package event

import (
	"context"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/commonweal/commonweal/internal/event/dispatch"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// Bus is a synchronous in-process event dispatcher. Instances are
// independent: each carries its own registry, so tests and multi-tenant
// hosts can run several buses side by side. A Bus must be constructed with
// New and torn down with Close.
type Bus struct {
	registry *registry
	executor *dispatch.Executor
	log      zerolog.Logger
	closed   atomic.Bool

	emitted       atomic.Uint64
	delivered     atomic.Uint64
	handlerErrors atomic.Uint64
	handlerPanics atomic.Uint64
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger that receives the emission trace and handler
// failure reports.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Bus) {
		b.log = log
	}
}

// New creates a new event bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		registry: newRegistry(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.executor = dispatch.NewExecutor()
	return b
}

// emitConfig holds per-emission metadata.
type emitConfig struct {
	source        Source
	userID        string
	correlationID string
}

// EmitOption attaches metadata to an emission.
type EmitOption func(*emitConfig)

// WithSource sets the emitting actor kind. Defaults to SourceSystem.
func WithSource(s Source) EmitOption {
	return func(c *emitConfig) {
		c.source = s
	}
}

// WithUser attributes the event to a user.
func WithUser(userID string) EmitOption {
	return func(c *emitConfig) {
		c.userID = userID
	}
}

// WithCorrelation carries a request correlation token on the event. Actions
// set it at "*.requested" time; collaborators echo it on the outcome event.
func WithCorrelation(id string) EmitOption {
	return func(c *emitConfig) {
		c.correlationID = id
	}
}

// Emit constructs an event and synchronously delivers it to every matching
// subscription: exact-tag handlers first in registration order, then
// wildcard handlers in registration order. Handler errors and panics are
// logged and isolated; Emit only fails for a closed bus or a malformed tag.
func (b *Bus) Emit(ctx context.Context, t topic.Topic, payload any, opts ...EmitOption) error {
	if b.closed.Load() {
		return ErrBusClosed
	}
	if !t.IsValid() || t.IsPattern() {
		return ErrInvalidTopic
	}

	cfg := emitConfig{source: SourceSystem}
	for _, opt := range opts {
		opt(&cfg)
	}

	evt := Envelope{
		ID:            NewID(),
		Topic:         t,
		Timestamp:     time.Now(),
		Source:        cfg.source,
		UserID:        cfg.userID,
		CorrelationID: cfg.correlationID,
		Payload:       payload,
	}

	b.emitted.Add(1)
	b.log.Trace().
		Str("event_id", evt.ID).
		Str("topic", t.String()).
		Str("source", string(evt.Source)).
		Str("correlation_id", evt.CorrelationID).
		Msg("event emitted")

	for _, sub := range b.registry.match(t) {
		if !sub.shouldDeliver(evt) {
			continue
		}

		// A once-subscription is deactivated and removed before its handler
		// runs, so reentrant emissions from inside the handler cannot
		// deliver to it again, and a panicking handler cannot leak a stale
		// registration.
		if sub.config.once {
			if !sub.claim() {
				continue
			}
			b.registry.remove(sub)
		}

		b.dispatch(ctx, evt, sub)
	}

	return nil
}

// dispatch runs one handler through the isolating executor and records the
// outcome.
func (b *Bus) dispatch(ctx context.Context, evt Envelope, sub *subscription) {
	result := b.executor.Execute(ctx, evt, func(ctx context.Context, raw any) error {
		return sub.handler(ctx, raw.(Envelope))
	})

	switch {
	case result.Panicked:
		b.handlerPanics.Add(1)
		b.log.Error().
			Str("event_id", evt.ID).
			Str("topic", evt.Topic.String()).
			Str("subscription", sub.id).
			Str("pattern", sub.pattern.String()).
			Interface("panic", result.PanicValue).
			Bytes("stack", result.PanicStack).
			Msg("event handler panicked")
	case result.Err != nil:
		b.handlerErrors.Add(1)
		b.log.Error().
			Err(result.Err).
			Str("event_id", evt.ID).
			Str("topic", evt.Topic.String()).
			Str("subscription", sub.id).
			Str("pattern", sub.pattern.String()).
			Msg("event handler failed")
	case result.Success:
		b.delivered.Add(1)
	}
}

// On registers a handler for an event tag or wildcard pattern and returns
// the function that removes exactly this registration. Registering the same
// handler function for the same pattern again is idempotent and returns an
// unsubscribe function for the existing registration.
func (b *Bus) On(pattern topic.Topic, fn HandlerFunc, opts ...SubscribeOption) (func(), error) {
	return b.subscribe(pattern, fn, false, opts...)
}

// Once registers a handler that is delivered to at most once. The
// registration is removed before the handler's first invocation, even if
// the handler re-emits its own tag or panics.
func (b *Bus) Once(t topic.Topic, fn HandlerFunc, opts ...SubscribeOption) (func(), error) {
	return b.subscribe(t, fn, true, opts...)
}

func (b *Bus) subscribe(pattern topic.Topic, fn HandlerFunc, once bool, opts ...SubscribeOption) (func(), error) {
	if b.closed.Load() {
		return nil, ErrBusClosed
	}
	if fn == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidPattern
	}

	key := subKey{pattern: pattern, fn: handlerPointer(fn), once: once}
	sub, added := b.registry.add(newSubscription(pattern, fn, key, opts...))
	if !added {
		b.log.Debug().
			Str("pattern", pattern.String()).
			Msg("duplicate handler registration collapsed")
	}

	return func() {
		sub.cancel()
		b.registry.remove(sub)
	}, nil
}

// Off removes specific handlers for a pattern, or every registration for
// the pattern when no handler is given.
func (b *Bus) Off(pattern topic.Topic, fns ...HandlerFunc) {
	if len(fns) == 0 {
		for _, sub := range b.registry.removeAll(pattern) {
			sub.cancel()
		}
		return
	}

	for _, fn := range fns {
		if fn == nil {
			continue
		}
		ptr := handlerPointer(fn)
		for _, once := range []bool{false, true} {
			if sub, ok := b.registry.removeByKey(subKey{pattern: pattern, fn: ptr, once: once}); ok {
				sub.cancel()
			}
		}
	}
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	return Stats{
		Emitted:             b.emitted.Load(),
		Delivered:           b.delivered.Load(),
		HandlerErrors:       b.handlerErrors.Load(),
		HandlerPanics:       b.handlerPanics.Load(),
		ActiveSubscriptions: b.registry.count(),
	}
}

// Close tears the bus down: all registrations are cancelled and further
// emissions fail with ErrBusClosed. Close is idempotent in effect but
// reports ErrBusClosed on repeated calls.
func (b *Bus) Close() error {
	if b.closed.Swap(true) {
		return ErrBusClosed
	}
	b.registry.clear()
	return nil
}

// handlerPointer returns the identity key of a handler function. Two
// HandlerFunc values wrapping the same function collapse to one
// registration per pattern.
func handlerPointer(fn HandlerFunc) uintptr {
	return reflect.ValueOf(fn).Pointer()
}
