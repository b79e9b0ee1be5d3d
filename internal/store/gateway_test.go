package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/events"
	"github.com/commonweal/commonweal/internal/state"
)

func testSeed() Seed {
	return Seed{
		Accounts: []Account{
			{UserID: "u1", Email: "ada@example.org", DisplayName: "Ada", Password: "correct-horse"},
			{UserID: "u2", Email: "grace@example.org", DisplayName: "Grace", Password: "battery-staple"},
		},
		Communities: []domain.Community{
			{ID: "c1", Name: "Commonweal", Level: domain.CommunityLevelGlobal, OwnerID: "u1",
				CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "c2", Name: "Riverside", Level: domain.CommunityLevelNeighborhood, OwnerID: "u2",
				CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func newTestGateway(t *testing.T, opts ...Option) (*state.Container, *Gateway) {
	t.Helper()

	bus := event.New()
	t.Cleanup(func() { bus.Close() })

	c, err := state.New(bus)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	opts = append([]Option{WithSeed(testSeed())}, opts...)
	return c, New(bus, c, opts...)
}

func signIn(t *testing.T, c *state.Container, g *Gateway) {
	t.Helper()
	g.SignIn(context.Background(), "ada@example.org", "correct-horse")
	require.NotNil(t, c.Auth().Session)
}

func TestSignInSuccess(t *testing.T) {
	c, g := newTestGateway(t)

	g.SignIn(context.Background(), "Ada@Example.org", "correct-horse")

	auth := c.Auth()
	require.NotNil(t, auth.Session)
	assert.Equal(t, "u1", auth.Session.UserID)
	assert.Equal(t, "Ada", auth.Session.DisplayName)
	assert.NotEmpty(t, auth.Session.Token)
	assert.False(t, auth.IsLoading)
}

func TestSignInWrongPassword(t *testing.T) {
	c, g := newTestGateway(t)

	g.SignIn(context.Background(), "ada@example.org", "wrong-password")

	auth := c.Auth()
	assert.Nil(t, auth.Session)
	assert.Equal(t, "invalid email or password", auth.Error)
}

func TestSignInValidation(t *testing.T) {
	c, g := newTestGateway(t)

	g.SignIn(context.Background(), "not-an-email", "correct-horse")
	assert.Contains(t, c.Auth().Error, "email is invalid")

	g.SignIn(context.Background(), "ada@example.org", "short")
	assert.Contains(t, c.Auth().Error, "password is invalid")
}

func TestSignOutSuccess(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.SignOut(context.Background())

	auth := c.Auth()
	assert.Nil(t, auth.Session)
	assert.Nil(t, auth.SignOutFailure)
}

func TestSignOutWithoutSession(t *testing.T) {
	c, g := newTestGateway(t)

	g.SignOut(context.Background())

	auth := c.Auth()
	require.NotNil(t, auth.SignOutFailure)
	assert.Equal(t, "no_session", auth.SignOutFailure.ErrorCode)
	assert.False(t, auth.SignOutFailure.Retryable)
}

func TestSignOutStructuredFailure(t *testing.T) {
	c, g := newTestGateway(t, WithSignOutFailure(events.SignOutFailed{
		ErrorCode: "network_unreachable",
		Retryable: true,
		Details:   "token revocation endpoint timed out",
	}))
	signIn(t, c, g)

	g.SignOut(context.Background())

	auth := c.Auth()
	require.NotNil(t, auth.Session)
	require.NotNil(t, auth.SignOutFailure)
	assert.Equal(t, "network_unreachable", auth.SignOutFailure.ErrorCode)
	assert.True(t, auth.SignOutFailure.Retryable)
	assert.Equal(t, "token revocation endpoint timed out", auth.Error)
}

func TestFetchCommunitiesNewestFirstAndAutoSelect(t *testing.T) {
	c, g := newTestGateway(t)

	g.FetchCommunities(context.Background())

	got := c.Communities()
	require.Len(t, got.List, 2)
	assert.Equal(t, "c2", got.List[0].ID)
	assert.Equal(t, "c1", got.List[1].ID)
	assert.Equal(t, "c1", got.ActiveID)
	assert.False(t, got.IsLoading)
}

func TestCreateCommunityRequiresSignIn(t *testing.T) {
	c, g := newTestGateway(t)

	g.CreateCommunity(context.Background(), domain.CommunityInput{Name: "Hilltop"})

	got := c.Communities()
	assert.Empty(t, got.List)
	assert.Equal(t, "sign in to create a community", got.Error)
}

func TestCreateCommunity(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.CreateCommunity(context.Background(), domain.CommunityInput{Name: "Hilltop"})

	got := c.Communities()
	require.Len(t, got.List, 1)
	assert.Equal(t, "Hilltop", got.List[0].Name)
	assert.Equal(t, "u1", got.List[0].OwnerID)
	assert.Equal(t, domain.CommunityLevelNeighborhood, got.List[0].Level)
	assert.Empty(t, got.Error)
}

func TestCreateCommunityValidation(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.CreateCommunity(context.Background(), domain.CommunityInput{Name: "x"})

	got := c.Communities()
	assert.Empty(t, got.List)
	assert.Contains(t, got.Error, "name is invalid")
}

func TestUpdateCommunityOwnerOnly(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)
	g.FetchCommunities(context.Background())

	// c2 belongs to another account.
	g.UpdateCommunity(context.Background(), "c2", domain.CommunityInput{Name: "Renamed"})
	assert.Equal(t, "only the owner may update a community", c.Communities().Error)

	g.UpdateCommunity(context.Background(), "c1", domain.CommunityInput{Name: "Commonweal HQ"})
	got := c.Communities()
	assert.Empty(t, got.Error)
	assert.Equal(t, "Commonweal HQ", got.List[1].Name)
}

func TestDeleteCommunitySoftDelete(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.DeleteCommunity(context.Background(), "c1")

	g.FetchCommunities(context.Background())
	got := c.Communities()
	require.Len(t, got.List, 1)
	assert.Equal(t, "c2", got.List[0].ID)

	// The tombstoned entity behaves like a missing one.
	g.DeleteCommunity(context.Background(), "c1")
	assert.Equal(t, "community not found", c.Communities().Error)
}

func TestCreateResource(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.CreateResource(context.Background(), domain.ResourceInput{
		CommunityID: "c1",
		Title:       "Drill",
		Category:    "tools",
	})

	got := c.Resources()
	require.Len(t, got.List, 1)
	assert.Equal(t, "Drill", got.List[0].Title)
	assert.Equal(t, "u1", got.List[0].OwnerID)
}

func TestCreateResourceUnknownCommunity(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.CreateResource(context.Background(), domain.ResourceInput{CommunityID: "nope", Title: "Drill"})

	got := c.Resources()
	assert.Empty(t, got.List)
	assert.Equal(t, "community not found", got.Error)
}

func TestResourceUpdateAndDelete(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.CreateResource(context.Background(), domain.ResourceInput{CommunityID: "c1", Title: "Drill"})
	id := c.Resources().List[0].ID

	g.UpdateResource(context.Background(), id, domain.ResourceInput{CommunityID: "c1", Title: "Hammer drill"})
	assert.Equal(t, "Hammer drill", c.Resources().List[0].Title)

	g.DeleteResource(context.Background(), id)
	assert.Empty(t, c.Resources().List)

	// Soft-deleted resources never come back from a fetch.
	g.FetchResources(context.Background(), "c1")
	assert.Empty(t, c.Resources().List)
}

func TestFetchResourcesScopedToCommunity(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.CreateResource(context.Background(), domain.ResourceInput{CommunityID: "c1", Title: "Drill"})
	g.CreateResource(context.Background(), domain.ResourceInput{CommunityID: "c2", Title: "Ladder"})

	g.FetchResources(context.Background(), "c2")
	got := c.Resources()
	require.Len(t, got.List, 1)
	assert.Equal(t, "Ladder", got.List[0].Title)
}

func TestGiveThanks(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.GiveThanks(context.Background(), domain.ThanksInput{
		CommunityID: "c1",
		ToUserID:    "u2",
		Message:     "Thanks for the ladder!",
	})

	got := c.Thanks()
	require.Len(t, got.List, 1)
	assert.Equal(t, "u1", got.List[0].FromUserID)
	assert.Equal(t, "u2", got.List[0].ToUserID)
}

func TestGiveThanksValidation(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.GiveThanks(context.Background(), domain.ThanksInput{CommunityID: "c1", ToUserID: "u2"})

	got := c.Thanks()
	assert.Empty(t, got.List)
	assert.Contains(t, got.Error, "message is invalid")
}

func TestDeleteThanksSenderOnly(t *testing.T) {
	c, g := newTestGateway(t)
	signIn(t, c, g)

	g.GiveThanks(context.Background(), domain.ThanksInput{CommunityID: "c1", ToUserID: "u2", Message: "hi"})
	id := c.Thanks().List[0].ID

	// Switch to the other account; they did not send the note.
	g.SignOut(context.Background())
	g.SignIn(context.Background(), "grace@example.org", "battery-staple")

	g.DeleteThanks(context.Background(), id)
	assert.Equal(t, "only the sender may delete a thanks note", c.Thanks().Error)

	g.SignOut(context.Background())
	g.SignIn(context.Background(), "ada@example.org", "correct-horse")
	g.DeleteThanks(context.Background(), id)

	g.FetchThanks(context.Background(), "c1")
	assert.Empty(t, c.Thanks().List)
}
