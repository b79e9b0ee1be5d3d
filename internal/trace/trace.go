// Package trace is the output-only logging collaborator: a wildcard
// subscriber that logs every emission and keeps a bounded in-memory tail
// for inspection. The core never reads from it.
package trace

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// DefaultCapacity is the number of envelopes retained when none is given.
const DefaultCapacity = 256

// Recorder observes every event on a bus.
type Recorder struct {
	mu     sync.Mutex
	buf    []event.Envelope
	cap    int
	log    zerolog.Logger
	filter event.FilterFunc
	unsub  func()
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger emissions are traced to.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Recorder) {
		r.log = log
	}
}

// WithCapacity bounds the retained tail.
func WithCapacity(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.cap = n
		}
	}
}

// WithSources restricts recording to events from the given sources.
func WithSources(sources ...event.Source) Option {
	return func(r *Recorder) {
		r.filter = event.SourceFilter(sources...)
	}
}

// New subscribes a recorder to every event on the bus.
func New(bus *event.Bus, opts ...Option) (*Recorder, error) {
	r := &Recorder{
		cap: DefaultCapacity,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With().Str("component", "trace").Logger()

	subOpts := []event.SubscribeOption{}
	if r.filter != nil {
		subOpts = append(subOpts, event.WithFilter(r.filter))
	}

	unsub, err := bus.On(topic.Topic(topic.WildcardMulti), r.record, subOpts...)
	if err != nil {
		return nil, fmt.Errorf("subscribing trace recorder: %w", err)
	}
	r.unsub = unsub
	return r, nil
}

// record is the wildcard handler. It never fails; a recorder must not
// disturb the emission it observes.
func (r *Recorder) record(_ context.Context, evt event.Envelope) error {
	r.log.Debug().
		Str("event_id", evt.ID).
		Str("topic", evt.Topic.String()).
		Str("source", string(evt.Source)).
		Str("user_id", evt.UserID).
		Str("correlation_id", evt.CorrelationID).
		Time("timestamp", evt.Timestamp).
		Msg("event")

	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = append(r.buf, evt)
	if len(r.buf) > r.cap {
		r.buf = r.buf[len(r.buf)-r.cap:]
	}
	return nil
}

// Events returns a copy of the retained tail, oldest first.
func (r *Recorder) Events() []event.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.buf)
}

// Len returns the number of retained envelopes.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf)
}

// Close unsubscribes the recorder. The retained tail stays readable.
func (r *Recorder) Close() {
	if r.unsub != nil {
		r.unsub()
		r.unsub = nil
	}
}
