package state

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/events"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// communityMutations are the state-mutation callbacks the community handler
// set runs against.
type communityMutations struct {
	begin        func(corr string)
	applyList    func(corr string, list []domain.Community) bool
	fail         func(corr, msg string) bool
	complete     func(corr string) bool
	prepend      func(c domain.Community)
	replace      func(c domain.Community)
	remove       func(id string)
	setActive    func(id string) (previous string)
	activeID     func() string
	findGlobalID func() (string, bool)
}

// communityOrchestrator is the one handler set member that emits as well as
// mutates: it completes the active-selection request/response cycle and
// auto-selects the global community after a bulk fetch. Keeping it separate
// makes the two handler contracts (pure reducer vs. emitting orchestrator)
// visible.
type communityOrchestrator struct {
	bus *event.Bus
	m   communityMutations
	log zerolog.Logger
}

// handleFetchSucceeded applies the fetched collection and, if no community
// is selected yet, requests selection of the top-level community.
func (o *communityOrchestrator) handleFetchSucceeded(ctx context.Context, evt event.Envelope) error {
	payload, ok := event.As[events.CommunityFetchSucceeded](evt)
	if !ok {
		logPayloadMismatch(o.log, evt)
		return event.ErrPayloadType
	}
	if !o.m.applyList(evt.CorrelationID, payload.Communities) {
		logStaleResponse(o.log, evt)
		return nil
	}

	if o.m.activeID() != "" {
		return nil
	}
	id, found := o.m.findGlobalID()
	if !found {
		o.log.Warn().
			Int("communities", len(payload.Communities)).
			Msg("no global community in fetched collection, leaving selection unset")
		return nil
	}

	return o.bus.Emit(ctx, events.TopicCommunityActiveChangeRequested,
		events.ActiveCommunityChangeRequested{CommunityID: id},
		event.WithSource(event.SourceSystem),
		event.WithCorrelation(event.NewID()),
	)
}

// handleActiveChangeRequested applies the selection mutation and announces
// it. This is the only place the container emits in response to its own
// mutation.
func (o *communityOrchestrator) handleActiveChangeRequested(ctx context.Context, evt event.Envelope) error {
	payload, ok := event.As[events.ActiveCommunityChangeRequested](evt)
	if !ok {
		logPayloadMismatch(o.log, evt)
		return event.ErrPayloadType
	}

	previous := o.m.setActive(payload.CommunityID)

	return o.bus.Emit(ctx, events.TopicCommunityActiveChanged,
		events.ActiveCommunityChanged{CommunityID: payload.CommunityID, PreviousID: previous},
		event.WithSource(event.SourceSystem),
		event.WithCorrelation(evt.CorrelationID),
	)
}

// registerCommunityHandlers subscribes the community lifecycle handlers.
func registerCommunityHandlers(bus *event.Bus, m communityMutations, log zerolog.Logger) ([]func(), error) {
	var unsubs []func()

	subscribe := func(t topic.Topic, fn event.HandlerFunc) error {
		off, err := bus.On(t, fn)
		if err != nil {
			return err
		}
		unsubs = append(unsubs, off)
		return nil
	}

	orch := &communityOrchestrator{bus: bus, m: m, log: log}

	requested := func(_ context.Context, evt event.Envelope) error {
		m.begin(evt.CorrelationID)
		return nil
	}

	handlers := map[topic.Topic]event.HandlerFunc{
		events.TopicCommunityFetchRequested:        requested,
		events.TopicCommunityCreateRequested:       requested,
		events.TopicCommunityUpdateRequested:       requested,
		events.TopicCommunityDeleteRequested:       requested,
		events.TopicCommunityFetchSucceeded:        orch.handleFetchSucceeded,
		events.TopicCommunityActiveChangeRequested: orch.handleActiveChangeRequested,

		events.TopicCommunityCreated: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.CommunityCreated](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			// Prepend without id dedup: duplicate create events append
			// duplicate entries, matching the display-copy contract.
			m.prepend(payload.Community)
			if !m.complete(evt.CorrelationID) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicCommunityUpdated: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.CommunityUpdated](evt)
			if !ok {
				logPayloadMismatch(log, evt)
				return event.ErrPayloadType
			}
			m.replace(payload.Community)
			if !m.complete(evt.CorrelationID) {
				logStaleResponse(log, evt)
			}
			return nil
		},
		events.TopicCommunityDeleted: func(_ context.Context, evt event.Envelope) error {
			payload, ok := event.As[events.CommunityDeleted](evt)
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
		events.TopicCommunityFetchFailed,
		events.TopicCommunityCreateFailed,
		events.TopicCommunityUpdateFailed,
		events.TopicCommunityDeleteFailed,
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
