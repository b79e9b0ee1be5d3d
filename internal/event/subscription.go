package event

import (
	"sync/atomic"

	"github.com/commonweal/commonweal/internal/event/topic"
)

// Subscription states.
const (
	stateActive int32 = iota
	stateCancelled
)

// subscriptionConfig holds per-subscription settings.
type subscriptionConfig struct {
	filter FilterFunc
	once   bool
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscriptionConfig)

// WithFilter sets a delivery predicate on the subscription. Events the
// filter rejects are skipped for this subscription only.
func WithFilter(f FilterFunc) SubscribeOption {
	return func(c *subscriptionConfig) {
		c.filter = f
	}
}

// subscription is one registry entry: a handler bound to a topic pattern.
type subscription struct {
	id      string
	seq     uint64
	pattern topic.Topic
	handler HandlerFunc
	key     subKey
	config  subscriptionConfig
	state   atomic.Int32
}

func newSubscription(pattern topic.Topic, fn HandlerFunc, key subKey, opts ...SubscribeOption) *subscription {
	var config subscriptionConfig
	config.once = key.once
	for _, opt := range opts {
		opt(&config)
	}

	return &subscription{
		id:      NewID(),
		pattern: pattern,
		handler: fn,
		key:     key,
		config:  config,
	}
}

func (s *subscription) isActive() bool {
	return s.state.Load() == stateActive
}

// cancel permanently deactivates the subscription.
func (s *subscription) cancel() {
	s.state.Store(stateCancelled)
}

// claim atomically takes sole ownership of a once-subscription's single
// delivery. It is called before the handler runs, so a reentrant emission
// (or a racing one) can never observe the registration again - not even if
// the handler itself panics.
func (s *subscription) claim() bool {
	return s.state.CompareAndSwap(stateActive, stateCancelled)
}

// shouldDeliver reports whether the event passes the subscription's state
// and filter checks.
func (s *subscription) shouldDeliver(evt Envelope) bool {
	if !s.isActive() {
		return false
	}
	if s.config.filter != nil && !s.config.filter(evt) {
		return false
	}
	return true
}
