package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/events"
	"github.com/commonweal/commonweal/internal/event/topic"
	"github.com/commonweal/commonweal/internal/state"
)

// Gateway is the in-memory data-store collaborator. It is synchronous: each
// method emits the "*.requested" event, performs the operation, and emits
// the outcome before returning.
type Gateway struct {
	mu       sync.RWMutex
	bus      *event.Bus
	state    *state.Container
	validate *validator.Validate
	log      zerolog.Logger

	accounts    map[string]Account // keyed by lowercase email
	communities map[string]domain.Community
	resources   map[string]domain.Resource
	thanks      map[string]domain.Thanks

	// signOutFailure, when set, makes SignOut emit it instead of
	// succeeding. Used to exercise the structured failure path.
	signOutFailure *events.SignOutFailed
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the gateway's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Gateway) {
		g.log = log
	}
}

// WithSeed preloads the gateway's dataset.
func WithSeed(seed Seed) Option {
	return func(g *Gateway) {
		for _, a := range seed.Accounts {
			g.accounts[strings.ToLower(a.Email)] = a
		}
		for _, c := range seed.Communities {
			g.communities[c.ID] = c
		}
		for _, r := range seed.Resources {
			g.resources[r.ID] = r
		}
		for _, t := range seed.Thanks {
			g.thanks[t.ID] = t
		}
	}
}

// WithSignOutFailure makes sign-out fail with the given structured shape.
func WithSignOutFailure(f events.SignOutFailed) Option {
	return func(g *Gateway) {
		g.signOutFailure = &f
	}
}

// New creates a gateway emitting into the given bus and requesting through
// the given container's actions.
func New(bus *event.Bus, st *state.Container, opts ...Option) *Gateway {
	g := &Gateway{
		bus:         bus,
		state:       st,
		validate:    validator.New(),
		log:         zerolog.Nop(),
		accounts:    make(map[string]Account),
		communities: make(map[string]domain.Community),
		resources:   make(map[string]domain.Resource),
		thanks:      make(map[string]domain.Thanks),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.With().Str("component", "store").Logger()
	return g
}

// emitOutcome emits a success/entity outcome event echoing the request's
// correlation token.
func (g *Gateway) emitOutcome(ctx context.Context, t topic.Topic, payload any, corr string) {
	if err := g.bus.Emit(ctx, t, payload,
		event.WithSource(event.SourceAPI),
		event.WithCorrelation(corr),
	); err != nil {
		g.log.Error().Err(err).Str("topic", t.String()).Msg("outcome emission failed")
	}
}

// emitFailed emits the "*.failed" outcome for a request.
func (g *Gateway) emitFailed(ctx context.Context, t topic.Topic, corr, msg string) {
	g.emitOutcome(ctx, t, events.OperationFailed{Error: msg}, corr)
}

// validationMessage flattens a validator error into the single error string
// the failed payload carries.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field())+" is invalid ("+fe.Tag()+")")
		}
		return strings.Join(fields, "; ")
	}
	return err.Error()
}

// session returns the signed-in session, or false if there is none.
func (g *Gateway) session() (domain.Session, bool) {
	auth := g.state.Auth()
	if auth.Session == nil {
		return domain.Session{}, false
	}
	return *auth.Session, true
}

// SignIn checks the credentials against the seeded accounts and emits the
// sign-in outcome.
func (g *Gateway) SignIn(ctx context.Context, email, password string) {
	corr := g.state.SignIn(ctx, email)

	creds := domain.Credentials{Email: email, Password: password}
	if err := g.validate.Struct(creds); err != nil {
		g.emitFailed(ctx, events.TopicAuthSignInFailed, corr, validationMessage(err))
		return
	}

	g.mu.RLock()
	acct, ok := g.accounts[strings.ToLower(email)]
	g.mu.RUnlock()
	if !ok || acct.Password != password {
		g.emitFailed(ctx, events.TopicAuthSignInFailed, corr, "invalid email or password")
		return
	}

	session := domain.Session{
		UserID:      acct.UserID,
		Email:       acct.Email,
		DisplayName: acct.DisplayName,
		Token:       event.NewID(),
		IssuedAt:    time.Now(),
	}
	g.emitOutcome(ctx, events.TopicAuthSignInSucceeded, events.SignInSucceeded{Session: session}, corr)
}

// SignOut ends the current session and emits the sign-out outcome.
func (g *Gateway) SignOut(ctx context.Context) {
	corr := g.state.SignOut(ctx)

	if g.signOutFailure != nil {
		g.emitOutcome(ctx, events.TopicAuthSignOutFailed, *g.signOutFailure, corr)
		return
	}
	if _, ok := g.session(); !ok {
		g.emitOutcome(ctx, events.TopicAuthSignOutFailed, events.SignOutFailed{
			ErrorCode: "no_session",
			Retryable: false,
			Details:   "no session to sign out",
		}, corr)
		return
	}
	g.emitOutcome(ctx, events.TopicAuthSignOutSucceeded, events.SignOutSucceeded{}, corr)
}

// FetchCommunities emits the visible (non-deleted) community collection,
// newest first.
func (g *Gateway) FetchCommunities(ctx context.Context) {
	corr := g.state.FetchCommunities(ctx)

	g.mu.RLock()
	list := make([]domain.Community, 0, len(g.communities))
	for _, c := range g.communities {
		if !c.Deleted() {
			list = append(list, c)
		}
	}
	g.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	g.emitOutcome(ctx, events.TopicCommunityFetchSucceeded, events.CommunityFetchSucceeded{Communities: list}, corr)
}

// CreateCommunity validates the input and emits the created community. The
// caller must be signed in; the new community is owned by them.
func (g *Gateway) CreateCommunity(ctx context.Context, input domain.CommunityInput) {
	corr := g.state.CreateCommunity(ctx, input)

	session, ok := g.session()
	if !ok {
		g.emitFailed(ctx, events.TopicCommunityCreateFailed, corr, "sign in to create a community")
		return
	}
	if err := g.validate.Struct(input); err != nil {
		g.emitFailed(ctx, events.TopicCommunityCreateFailed, corr, validationMessage(err))
		return
	}

	level := input.Level
	if level == "" {
		level = domain.CommunityLevelNeighborhood
	}
	community := domain.Community{
		ID:          event.NewID(),
		Name:        input.Name,
		Description: input.Description,
		Level:       level,
		Location:    input.Location,
		OwnerID:     session.UserID,
		CreatedAt:   time.Now(),
	}

	g.mu.Lock()
	g.communities[community.ID] = community
	g.mu.Unlock()

	g.emitOutcome(ctx, events.TopicCommunityCreated, events.CommunityCreated{Community: community}, corr)
}

// UpdateCommunity applies new field values to an owned community.
func (g *Gateway) UpdateCommunity(ctx context.Context, id string, input domain.CommunityInput) {
	corr := g.state.UpdateCommunity(ctx, id, input)

	session, ok := g.session()
	if !ok {
		g.emitFailed(ctx, events.TopicCommunityUpdateFailed, corr, "sign in to update a community")
		return
	}
	if err := g.validate.Struct(input); err != nil {
		g.emitFailed(ctx, events.TopicCommunityUpdateFailed, corr, validationMessage(err))
		return
	}

	g.mu.Lock()
	community, found := g.communities[id]
	if !found || community.Deleted() {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicCommunityUpdateFailed, corr, "community not found")
		return
	}
	if community.OwnerID != session.UserID {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicCommunityUpdateFailed, corr, "only the owner may update a community")
		return
	}
	community.Name = input.Name
	community.Description = input.Description
	if input.Level != "" {
		community.Level = input.Level
	}
	if input.Location != nil {
		community.Location = input.Location
	}
	g.communities[id] = community
	g.mu.Unlock()

	g.emitOutcome(ctx, events.TopicCommunityUpdated, events.CommunityUpdated{Community: community}, corr)
}

// DeleteCommunity soft-deletes an owned community. The tombstoned entity is
// excluded from later fetches but kept for audit.
func (g *Gateway) DeleteCommunity(ctx context.Context, id string) {
	corr := g.state.DeleteCommunity(ctx, id)

	session, ok := g.session()
	if !ok {
		g.emitFailed(ctx, events.TopicCommunityDeleteFailed, corr, "sign in to delete a community")
		return
	}

	g.mu.Lock()
	community, found := g.communities[id]
	if !found || community.Deleted() {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicCommunityDeleteFailed, corr, "community not found")
		return
	}
	if community.OwnerID != session.UserID {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicCommunityDeleteFailed, corr, "only the owner may delete a community")
		return
	}
	now := time.Now()
	community.DeletedAt = &now
	g.communities[id] = community
	g.mu.Unlock()

	g.emitOutcome(ctx, events.TopicCommunityDeleted, events.CommunityDeleted{ID: id}, corr)
}

// FetchResources emits a community's visible resources, newest first.
func (g *Gateway) FetchResources(ctx context.Context, communityID string) {
	corr := g.state.FetchResources(ctx, communityID)

	g.mu.RLock()
	list := make([]domain.Resource, 0)
	for _, r := range g.resources {
		if r.CommunityID == communityID && !r.Deleted() {
			list = append(list, r)
		}
	}
	g.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	g.emitOutcome(ctx, events.TopicResourceFetchSucceeded, events.ResourceFetchSucceeded{Resources: list}, corr)
}

// CreateResource validates the input and emits the created resource.
func (g *Gateway) CreateResource(ctx context.Context, input domain.ResourceInput) {
	corr := g.state.CreateResource(ctx, input)

	session, ok := g.session()
	if !ok {
		g.emitFailed(ctx, events.TopicResourceCreateFailed, corr, "sign in to share a resource")
		return
	}
	if err := g.validate.Struct(input); err != nil {
		g.emitFailed(ctx, events.TopicResourceCreateFailed, corr, validationMessage(err))
		return
	}

	g.mu.Lock()
	community, found := g.communities[input.CommunityID]
	if !found || community.Deleted() {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicResourceCreateFailed, corr, "community not found")
		return
	}
	resource := domain.Resource{
		ID:          event.NewID(),
		CommunityID: input.CommunityID,
		OwnerID:     session.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		CreatedAt:   time.Now(),
	}
	g.resources[resource.ID] = resource
	g.mu.Unlock()

	g.emitOutcome(ctx, events.TopicResourceCreated, events.ResourceCreated{Resource: resource}, corr)
}

// UpdateResource applies new field values to an owned resource.
func (g *Gateway) UpdateResource(ctx context.Context, id string, input domain.ResourceInput) {
	corr := g.state.UpdateResource(ctx, id, input)

	session, ok := g.session()
	if !ok {
		g.emitFailed(ctx, events.TopicResourceUpdateFailed, corr, "sign in to update a resource")
		return
	}
	if err := g.validate.Struct(input); err != nil {
		g.emitFailed(ctx, events.TopicResourceUpdateFailed, corr, validationMessage(err))
		return
	}

	g.mu.Lock()
	resource, found := g.resources[id]
	if !found || resource.Deleted() {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicResourceUpdateFailed, corr, "resource not found")
		return
	}
	if resource.OwnerID != session.UserID {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicResourceUpdateFailed, corr, "only the owner may update a resource")
		return
	}
	resource.Title = input.Title
	resource.Description = input.Description
	resource.Category = input.Category
	g.resources[id] = resource
	g.mu.Unlock()

	g.emitOutcome(ctx, events.TopicResourceUpdated, events.ResourceUpdated{Resource: resource}, corr)
}

// DeleteResource soft-deletes an owned resource.
func (g *Gateway) DeleteResource(ctx context.Context, id string) {
	corr := g.state.DeleteResource(ctx, id)

	session, ok := g.session()
	if !ok {
		g.emitFailed(ctx, events.TopicResourceDeleteFailed, corr, "sign in to delete a resource")
		return
	}

	g.mu.Lock()
	resource, found := g.resources[id]
	if !found || resource.Deleted() {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicResourceDeleteFailed, corr, "resource not found")
		return
	}
	if resource.OwnerID != session.UserID {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicResourceDeleteFailed, corr, "only the owner may delete a resource")
		return
	}
	now := time.Now()
	resource.DeletedAt = &now
	g.resources[id] = resource
	g.mu.Unlock()

	g.emitOutcome(ctx, events.TopicResourceDeleted, events.ResourceDeleted{ID: id}, corr)
}

// FetchThanks emits a community's thanks notes, newest first.
func (g *Gateway) FetchThanks(ctx context.Context, communityID string) {
	corr := g.state.FetchThanks(ctx, communityID)

	g.mu.RLock()
	list := make([]domain.Thanks, 0)
	for _, t := range g.thanks {
		if t.CommunityID == communityID {
			list = append(list, t)
		}
	}
	g.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	g.emitOutcome(ctx, events.TopicThanksFetchSucceeded, events.ThanksFetchSucceeded{Thanks: list}, corr)
}

// GiveThanks validates the input and emits the created thanks note,
// attributed to the signed-in user.
func (g *Gateway) GiveThanks(ctx context.Context, input domain.ThanksInput) {
	corr := g.state.GiveThanks(ctx, input)

	session, ok := g.session()
	if !ok {
		g.emitFailed(ctx, events.TopicThanksCreateFailed, corr, "sign in to give thanks")
		return
	}
	if err := g.validate.Struct(input); err != nil {
		g.emitFailed(ctx, events.TopicThanksCreateFailed, corr, validationMessage(err))
		return
	}

	thanks := domain.Thanks{
		ID:          event.NewID(),
		CommunityID: input.CommunityID,
		FromUserID:  session.UserID,
		ToUserID:    input.ToUserID,
		ResourceID:  input.ResourceID,
		Message:     input.Message,
		CreatedAt:   time.Now(),
	}

	g.mu.Lock()
	g.thanks[thanks.ID] = thanks
	g.mu.Unlock()

	g.emitOutcome(ctx, events.TopicThanksCreated, events.ThanksCreated{Thanks: thanks}, corr)
}

// DeleteThanks removes a thanks note the signed-in user sent.
func (g *Gateway) DeleteThanks(ctx context.Context, id string) {
	corr := g.state.DeleteThanks(ctx, id)

	session, ok := g.session()
	if !ok {
		g.emitFailed(ctx, events.TopicThanksDeleteFailed, corr, "sign in to delete a thanks note")
		return
	}

	g.mu.Lock()
	thanks, found := g.thanks[id]
	if !found {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicThanksDeleteFailed, corr, "thanks note not found")
		return
	}
	if thanks.FromUserID != session.UserID {
		g.mu.Unlock()
		g.emitFailed(ctx, events.TopicThanksDeleteFailed, corr, "only the sender may delete a thanks note")
		return
	}
	delete(g.thanks, id)
	g.mu.Unlock()

	g.emitOutcome(ctx, events.TopicThanksDeleted, events.ThanksDeleted{ID: id}, corr)
}
