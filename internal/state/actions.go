package state

import (
	"context"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/events"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// Actions are fire-and-forget: each emits a single "*.requested" event and
// returns the correlation token identifying the request. No action mutates
// state directly; the caller observes completion by re-reading the slices
// once a collaborator has emitted the outcome event carrying the same
// token.

// request emits a "*.requested" event attributed to the current user and
// returns the generated correlation token.
func (c *Container) request(ctx context.Context, t topic.Topic, payload any) string {
	corr := event.NewID()
	if err := c.bus.Emit(ctx, t, payload,
		event.WithSource(event.SourceUser),
		event.WithUser(c.currentUserID()),
		event.WithCorrelation(corr),
	); err != nil {
		c.log.Error().Err(err).Str("topic", t.String()).Msg("action emission failed")
	}
	return corr
}

// SignIn requests a sign-in for the given email. The credential check runs
// in the auth collaborator; only the email rides on the event.
func (c *Container) SignIn(ctx context.Context, email string) string {
	return c.request(ctx, events.TopicAuthSignInRequested, events.SignInRequested{Email: email})
}

// SignOut requests ending the current session.
func (c *Container) SignOut(ctx context.Context) string {
	return c.request(ctx, events.TopicAuthSignOutRequested, events.SignOutRequested{})
}

// FetchCommunities requests the community collection.
func (c *Container) FetchCommunities(ctx context.Context) string {
	return c.request(ctx, events.TopicCommunityFetchRequested, events.CommunityFetchRequested{})
}

// CreateCommunity requests creation of a community.
func (c *Container) CreateCommunity(ctx context.Context, input domain.CommunityInput) string {
	return c.request(ctx, events.TopicCommunityCreateRequested, events.CommunityCreateRequested{Input: input})
}

// UpdateCommunity requests an update of the named community.
func (c *Container) UpdateCommunity(ctx context.Context, id string, input domain.CommunityInput) string {
	return c.request(ctx, events.TopicCommunityUpdateRequested, events.CommunityUpdateRequested{ID: id, Input: input})
}

// DeleteCommunity requests deletion of the named community.
func (c *Container) DeleteCommunity(ctx context.Context, id string) string {
	return c.request(ctx, events.TopicCommunityDeleteRequested, events.CommunityDeleteRequested{ID: id})
}

// SetActiveCommunity requests changing the active community selection.
func (c *Container) SetActiveCommunity(ctx context.Context, id string) string {
	return c.request(ctx, events.TopicCommunityActiveChangeRequested, events.ActiveCommunityChangeRequested{CommunityID: id})
}

// FetchResources requests the resource collection of a community.
func (c *Container) FetchResources(ctx context.Context, communityID string) string {
	return c.request(ctx, events.TopicResourceFetchRequested, events.ResourceFetchRequested{CommunityID: communityID})
}

// CreateResource requests creation of a shared resource.
func (c *Container) CreateResource(ctx context.Context, input domain.ResourceInput) string {
	return c.request(ctx, events.TopicResourceCreateRequested, events.ResourceCreateRequested{Input: input})
}

// UpdateResource requests an update of the named resource.
func (c *Container) UpdateResource(ctx context.Context, id string, input domain.ResourceInput) string {
	return c.request(ctx, events.TopicResourceUpdateRequested, events.ResourceUpdateRequested{ID: id, Input: input})
}

// DeleteResource requests deletion of the named resource.
func (c *Container) DeleteResource(ctx context.Context, id string) string {
	return c.request(ctx, events.TopicResourceDeleteRequested, events.ResourceDeleteRequested{ID: id})
}

// FetchThanks requests the thanks collection of a community.
func (c *Container) FetchThanks(ctx context.Context, communityID string) string {
	return c.request(ctx, events.TopicThanksFetchRequested, events.ThanksFetchRequested{CommunityID: communityID})
}

// GiveThanks requests creation of a thanks note.
func (c *Container) GiveThanks(ctx context.Context, input domain.ThanksInput) string {
	return c.request(ctx, events.TopicThanksCreateRequested, events.ThanksCreateRequested{Input: input})
}

// DeleteThanks requests deletion of the named thanks note.
func (c *Container) DeleteThanks(ctx context.Context, id string) string {
	return c.request(ctx, events.TopicThanksDeleteRequested, events.ThanksDeleteRequested{ID: id})
}
