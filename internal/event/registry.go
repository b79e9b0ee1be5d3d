package event

import (
	"sort"
	"sync"

	"github.com/commonweal/commonweal/internal/event/topic"
)

// subKey identifies a registration for set semantics: one handler function
// may be registered at most once per pattern (separately for On and Once).
type subKey struct {
	pattern topic.Topic
	fn      uintptr
	once    bool
}

// registry holds the bus's subscriptions. It is safe for concurrent use.
// Exact-tag registrations and wildcard-pattern registrations are kept apart
// because dispatch order requires exact matches to fire first.
type registry struct {
	mu       sync.RWMutex
	exact    map[topic.Topic][]*subscription
	patterns map[topic.Topic][]*subscription
	byKey    map[subKey]*subscription
	nextSeq  uint64
}

func newRegistry() *registry {
	return &registry{
		exact:    make(map[topic.Topic][]*subscription),
		patterns: make(map[topic.Topic][]*subscription),
		byKey:    make(map[subKey]*subscription),
	}
}

// add inserts a subscription, or returns the existing one if the same
// handler is already registered for the same pattern (idempotent
// registration). The second return is false when an existing entry was
// found.
func (r *registry) add(sub *subscription) (*subscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byKey[sub.key]; ok && existing.isActive() {
		return existing, false
	}

	r.nextSeq++
	sub.seq = r.nextSeq

	bucket := r.bucketFor(sub.pattern)
	bucket[sub.pattern] = append(bucket[sub.pattern], sub)
	r.byKey[sub.key] = sub

	return sub, true
}

// remove deletes a subscription from the registry. Safe to call more than
// once; later calls are no-ops.
func (r *registry) remove(sub *subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.removeLocked(sub)
}

func (r *registry) removeLocked(sub *subscription) bool {
	if cur, ok := r.byKey[sub.key]; !ok || cur != sub {
		return false
	}

	bucket := r.bucketFor(sub.pattern)
	subs := bucket[sub.pattern]
	for i, s := range subs {
		if s == sub {
			bucket[sub.pattern] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(bucket[sub.pattern]) == 0 {
		delete(bucket, sub.pattern)
	}

	delete(r.byKey, sub.key)
	return true
}

// removeByKey removes the subscription registered under the given key.
func (r *registry) removeByKey(key subKey) (*subscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.byKey[key]
	if !ok {
		return nil, false
	}
	return sub, r.removeLocked(sub)
}

// removeAll removes every subscription for the given pattern and returns
// the removed entries.
func (r *registry) removeAll(pattern topic.Topic) []*subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	bucket := r.bucketFor(pattern)
	subs := bucket[pattern]
	if len(subs) == 0 {
		return nil
	}

	removed := make([]*subscription, len(subs))
	copy(removed, subs)
	for _, sub := range removed {
		r.removeLocked(sub)
	}
	return removed
}

// match returns the subscriptions an event with the given tag must be
// delivered to: exact-tag entries first in registration order, then
// matching wildcard entries in registration order. The result is a copy;
// handlers may subscribe or unsubscribe during iteration without
// invalidating it.
func (r *registry) match(t topic.Topic) []*subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*subscription
	result = append(result, r.exact[t]...)

	var wild []*subscription
	for pattern, subs := range r.patterns {
		if t.Matches(pattern) {
			wild = append(wild, subs...)
		}
	}
	// Map iteration order is random; restore registration order across
	// patterns before appending.
	sort.Slice(wild, func(i, j int) bool {
		return wild[i].seq < wild[j].seq
	})

	return append(result, wild...)
}

// count returns the number of live registrations.
func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byKey)
}

// clear drops every registration, cancelling each so that in-flight
// dispatch snapshots stop delivering to them.
func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.byKey {
		sub.cancel()
	}
	r.exact = make(map[topic.Topic][]*subscription)
	r.patterns = make(map[topic.Topic][]*subscription)
	r.byKey = make(map[subKey]*subscription)
}

func (r *registry) bucketFor(pattern topic.Topic) map[topic.Topic][]*subscription {
	if pattern.IsPattern() {
		return r.patterns
	}
	return r.exact
}
