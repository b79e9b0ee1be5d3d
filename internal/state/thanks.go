package state

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/events"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// thanksMutations are the state-mutation callbacks the thanks handler set
// runs against.
type thanksMutations struct {
	begin     func(corr string)
	applyList func(corr string, list []domain.Thanks) bool
	fail      func(corr, msg string) bool
	complete  func(corr string) bool
	prepend   func(t domain.Thanks)
	remove    func(id string)
}

// registerThanksHandlers subscribes the thanks lifecycle handlers.
func registerThanksHandlers(bus *event.Bus, m thanksMutations, log zerolog.Logger) ([]func(), error) {
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
		events.TopicThanksFetchRequested:  requested,
		events.TopicThanksCreateRequested: requested,
		events.TopicThanksDeleteRequested: requested,

		events.TopicThanksFetchSucceeded: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.ThanksFetchSucceeded](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			if !m.applyList(evt.CorrelationID, payload.Thanks) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicThanksCreated: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.ThanksCreated](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			m.prepend(payload.Thanks)
			if !m.complete(evt.CorrelationID) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicThanksDeleted: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.ThanksDeleted](evt)
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
		events.TopicThanksFetchFailed,
		events.TopicThanksCreateFailed,
		events.TopicThanksDeleteFailed,
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
