// Package event provides the application's typed event bus.
//
// The bus is the communication backbone between the CRUD collaborators, the
// reactive state container, and any observers: collaborators emit
// "*.requested" events and their "*.success"/"*.failed" outcomes, the
// container's handler sets react to them, and nothing else is allowed to
// mutate application state.
//
// # Topics
//
// Events are addressed by hierarchical dot-notation tags defined in the
// events subpackage:
//
//	auth.signin.requested      - sign-in was initiated
//	community.fetch.success    - community list arrived
//	resource.created           - a shared resource was created
//
// Subscriptions may use wildcard patterns: "community.*" matches one extra
// segment, "community.**" any number, and a bare "**" observes everything.
//
// # Dispatch semantics
//
// Emission is synchronous in the emitter's goroutine. Handlers subscribed to
// the event's concrete tag run first in registration order, then wildcard
// pattern handlers in registration order. A handler error or panic is logged
// and isolated; it never stops sibling handlers and never propagates to the
// emitter. Handlers may emit further events from within themselves; nested
// emissions dispatch depth-first.
//
// Registering the same handler function twice for the same pattern is
// idempotent: the second registration returns the existing subscription's
// unsubscribe function.
//
// # Usage
//
//	bus := event.New(event.WithLogger(log))
//	defer bus.Close()
//
//	off, _ := bus.On(events.TopicCommunityCreated, func(ctx context.Context, evt event.Envelope) error {
//	    created, ok := event.As[events.CommunityCreated](evt)
//	    if !ok {
//	        return event.ErrPayloadType
//	    }
//	    // ...
//	    return nil
//	})
//	defer off()
//
//	bus.Emit(ctx, events.TopicCommunityCreated,
//	    events.CommunityCreated{Community: c},
//	    event.WithSource(event.SourceAPI))
package event
