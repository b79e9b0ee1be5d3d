package event

import "github.com/commonweal/commonweal/internal/event/topic"

// SourceFilter returns a filter that delivers only events from the given
// sources.
func SourceFilter(sources ...Source) FilterFunc {
	return func(evt Envelope) bool {
		for _, s := range sources {
			if evt.Source == s {
				return true
			}
		}
		return false
	}
}

// TopicFilter returns a filter that delivers only events matching one of the
// given patterns. Useful on broad subscriptions such as "**".
func TopicFilter(patterns ...topic.Topic) FilterFunc {
	return func(evt Envelope) bool {
		for _, p := range patterns {
			if evt.Topic.Matches(p) {
				return true
			}
		}
		return false
	}
}

// UserFilter returns a filter that delivers only events attributed to the
// given user.
func UserFilter(userID string) FilterFunc {
	return func(evt Envelope) bool {
		return evt.UserID == userID
	}
}

// And combines filters so that all must allow the event.
func And(filters ...FilterFunc) FilterFunc {
	return func(evt Envelope) bool {
		for _, f := range filters {
			if !f(evt) {
				return false
			}
		}
		return true
	}
}

// Or combines filters so that any may allow the event.
func Or(filters ...FilterFunc) FilterFunc {
	return func(evt Envelope) bool {
		for _, f := range filters {
			if f(evt) {
				return true
			}
		}
		return false
	}
}

// Not inverts a filter.
func Not(f FilterFunc) FilterFunc {
	return func(evt Envelope) bool {
		return !f(evt)
	}
}
