package state

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/events"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// resourceMutations are the state-mutation callbacks the resource handler
// set runs against.
type resourceMutations struct {
	begin     func(corr string)
	applyList func(corr string, list []domain.Resource) bool
	fail      func(corr, msg string) bool
	complete  func(corr string) bool
	prepend   func(r domain.Resource)
	replace   func(r domain.Resource)
	remove    func(id string)
}

// registerResourceHandlers subscribes the resource lifecycle handlers.
func registerResourceHandlers(bus *event.Bus, m resourceMutations, log zerolog.Logger) ([]func(), error) {
	var unsubs []func()

	subscribe := func(t topic.Topic, fn event.HandlerFunc) error {
		off, err := bus.On(t, fn)
		if err != nil {
			return err
		}
		unsubs = append(unsubs, off)
		return nil
	}

	requested := func(_ context.Context, evt event.Envelope) error {
		m.begin(evt.CorrelationID)
		return nil
	}

	handlers := map[topic.Topic]event.HandlerFunc{
		events.TopicResourceFetchRequested:  requested,
		events.TopicResourceCreateRequested: requested,
		events.TopicResourceUpdateRequested: requested,
		events.TopicResourceDeleteRequested: requested,

		events.TopicResourceFetchSucceeded: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.ResourceFetchSucceeded](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			if !m.applyList(evt.CorrelationID, payload.Resources) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicResourceCreated: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.ResourceCreated](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			m.prepend(payload.Resource)
			if !m.complete(evt.CorrelationID) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicResourceUpdated: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.ResourceUpdated](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			m.replace(payload.Resource)
			if !m.complete(evt.CorrelationID) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicResourceDeleted: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.ResourceDeleted](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			m.remove(payload.ID)
			if !m.complete(evt.CorrelationID) {
				logStaleResponse(log, evt)
			}
			return nil
		},
	}

	failed := func(_ context.Context, evt event.Envelope) error {
		payload, ok := event.As[events.OperationFailed](evt)
		if !ok {
			logPayloadMismatch(log, evt)
			return event.ErrPayloadType
		}
		if !m.fail(evt.CorrelationID, payload.Error) {
			logStaleResponse(log, evt)
		}
		return nil
	}
	for _, t := range []topic.Topic{
		events.TopicResourceFetchFailed,
		events.TopicResourceCreateFailed,
		events.TopicResourceUpdateFailed,
		events.TopicResourceDeleteFailed,
	} {
		handlers[t] = failed
	}

	for t, fn := range handlers {
		if err := subscribe(t, fn); err != nil {
			return unsubs, err
		}
	}
	return unsubs, nil
}
