package state

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/events"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// authMutations are the state-mutation callbacks the auth handler set runs
// against. The apply callbacks return false when the event's correlation
// token does not answer the pending request; the handler then discards the
// event.
type authMutations struct {
	begin        func(corr string)
	applySession func(corr string, s domain.Session) bool
	clearSession func(corr string) bool
	fail         func(corr, msg string) bool
	failSignOut  func(corr string, f events.SignOutFailed) bool
}

// registerAuthHandlers subscribes the auth lifecycle handlers: both sign-in
// and sign-out drive the same Idle -> Pending -> Idle machine over the auth
// slice.
func registerAuthHandlers(bus *event.Bus, m authMutations, log zerolog.Logger) ([]func(), error) {
	var unsubs []func()

	subscribe := func(t topic.Topic, fn event.HandlerFunc) error {
		off, err := bus.On(t, fn)
		if err != nil {
			return err
		}
		unsubs = append(unsubs, off)
		return nil
	}

	handlers := map[topic.Topic]event.HandlerFunc{
		events.TopicAuthSignInRequested: func(_ context.Context, evt event.Envelope) error {
			if _, ok := event.As[events.SignInRequested](evt); !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			m.begin(evt.CorrelationID)
			return nil
		},
		events.TopicAuthSignInSucceeded: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.SignInSucceeded](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			if !m.applySession(evt.CorrelationID, payload.Session) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicAuthSignInFailed: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.OperationFailed](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			if !m.fail(evt.CorrelationID, payload.Error) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicAuthSignOutRequested: func(_ context.Context, evt event.Envelope) error {
			if _, ok := event.As[events.SignOutRequested](evt); !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			m.begin(evt.CorrelationID)
			return nil
		},
		events.TopicAuthSignOutSucceeded: func(_ context.Context, evt event.Envelope) error {
			if _, ok := event.As[events.SignOutSucceeded](evt); !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			if !m.clearSession(evt.CorrelationID) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicAuthSignOutFailed: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.SignOutFailed](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			if !m.failSignOut(evt.CorrelationID, payload) {
				logStaleResponse(log, evt)
			}
			return nil
		},
	}

	for t, fn := range handlers {
		if err := subscribe(t, fn); err != nil {
			return unsubs, err
		}
	}
	return unsubs, nil
}

// logPayloadMismatch reports an envelope whose payload does not match the
// type its tag fixes. The event is discarded, never thrown.
func logPayloadMismatch(log zerolog.Logger, evt event.Envelope) {
	log.Error().
		Str("event_id", evt.ID).
		Str("topic", evt.Topic.String()).
		Msg("payload does not match topic, event discarded")
}

// logStaleResponse reports an outcome event whose correlation token no
// longer answers the pending request.
func logStaleResponse(log zerolog.Logger, evt event.Envelope) {
	log.Debug().
		Str("event_id", evt.ID).
		Str("topic", evt.Topic.String()).
		Str("correlation_id", evt.CorrelationID).
		Msg("stale response discarded")
}
