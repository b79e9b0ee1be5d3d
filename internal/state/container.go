package state

import (
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event"
	"github.com/commonweal/commonweal/internal/event/events"
)

// Container is the aggregate application state. All mutation happens inside
// the handler sets registered at construction; callers read state through
// the copying accessors and trigger changes through the actions.
type Container struct {
	mu  sync.RWMutex
	bus *event.Bus
	log zerolog.Logger

	auth        AuthSlice
	communities CommunitiesSlice
	resources   ResourcesSlice
	thanks      ThanksSlice

	unsubs []func()
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the container's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Container) {
		c.log = log
	}
}

// New creates a container bound to the given bus and registers every domain
// handler set. The returned container must be released with Close.
func New(bus *event.Bus, opts ...Option) (*Container, error) {
	if bus == nil {
		return nil, errors.New("state: bus is required")
	}

	c := &Container{
		bus: bus,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("component", "state").Logger()

	registrations := []func() ([]func(), error){
		func() ([]func(), error) { return registerAuthHandlers(bus, c.authMutations(), c.log) },
		func() ([]func(), error) { return registerCommunityHandlers(bus, c.communityMutations(), c.log) },
		func() ([]func(), error) { return registerResourceHandlers(bus, c.resourceMutations(), c.log) },
		func() ([]func(), error) { return registerThanksHandlers(bus, c.thanksMutations(), c.log) },
	}

	for _, register := range registrations {
		offs, err := register()
		c.unsubs = append(c.unsubs, offs...)
		if err != nil {
			c.Close()
			return nil, err
		}
	}

	return c, nil
}

// Close removes every handler registration. The container keeps its last
// state but no longer reacts to the bus.
func (c *Container) Close() {
	c.mu.Lock()
	unsubs := c.unsubs
	c.unsubs = nil
	c.mu.Unlock()

	for i := len(unsubs) - 1; i >= 0; i-- {
		unsubs[i]()
	}
}

// Auth returns a copy of the auth slice.
func (c *Container) Auth() AuthSlice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.auth
	if c.auth.Session != nil {
		s := *c.auth.Session
		out.Session = &s
	}
	if c.auth.SignOutFailure != nil {
		f := *c.auth.SignOutFailure
		out.SignOutFailure = &f
	}
	return out
}

// Communities returns a copy of the community slice.
func (c *Container) Communities() CommunitiesSlice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.communities
	out.List = slices.Clone(c.communities.List)
	return out
}

// Resources returns a copy of the resource slice.
func (c *Container) Resources() ResourcesSlice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.resources
	out.List = slices.Clone(c.resources.List)
	return out
}

// Thanks returns a copy of the thanks slice.
func (c *Container) Thanks() ThanksSlice {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.thanks
	out.List = slices.Clone(c.thanks.List)
	return out
}

// currentUserID returns the signed-in user for event attribution.
func (c *Container) currentUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.auth.Session == nil {
		return ""
	}
	return c.auth.Session.UserID
}

// authMutations builds the mutation callbacks handed to the auth handler
// set. Every callback serializes on the container mutex, which is what
// keeps handler execution equivalent to a single-threaded host.
func (c *Container) authMutations() authMutations {
	return authMutations{
		begin: func(corr string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.auth.pending = corr
			c.auth.IsLoading = true
			c.auth.Error = ""
			c.auth.SignOutFailure = nil
		},
		applySession: func(corr string, s domain.Session) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.auth.pending {
				return false
			}
			c.auth.Session = &s
			c.auth.IsLoading = false
			c.auth.Error = ""
			c.auth.pending = ""
			return true
		},
		clearSession: func(corr string) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.auth.pending {
				return false
			}
			c.auth.Session = nil
			c.auth.IsLoading = false
			c.auth.Error = ""
			c.auth.pending = ""
			return true
		},
		fail: func(corr, msg string) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.auth.pending {
				return false
			}
			c.auth.IsLoading = false
			c.auth.Error = msg
			c.auth.pending = ""
			return true
		},
		failSignOut: func(corr string, f events.SignOutFailed) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.auth.pending {
				return false
			}
			c.auth.IsLoading = false
			c.auth.Error = f.Details
			c.auth.SignOutFailure = &f
			c.auth.pending = ""
			return true
		},
	}
}

// communityMutations builds the mutation callbacks handed to the community
// handler set.
func (c *Container) communityMutations() communityMutations {
	return communityMutations{
		begin: func(corr string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.communities.pending = corr
			c.communities.IsLoading = true
			c.communities.Error = ""
		},
		applyList: func(corr string, list []domain.Community) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.communities.pending {
				return false
			}
			c.communities.List = slices.Clone(list)
			c.communities.IsLoading = false
			c.communities.Error = ""
			c.communities.pending = ""
			return true
		},
		fail: func(corr, msg string) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.communities.pending {
				return false
			}
			c.communities.IsLoading = false
			c.communities.Error = msg
			c.communities.pending = ""
			return true
		},
		complete: func(corr string) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.communities.pending {
				return false
			}
			c.communities.IsLoading = false
			c.communities.Error = ""
			c.communities.pending = ""
			return true
		},
		prepend: func(cm domain.Community) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.communities.List = append([]domain.Community{cm}, c.communities.List...)
		},
		replace: func(cm domain.Community) {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i := range c.communities.List {
				if c.communities.List[i].ID == cm.ID {
					c.communities.List[i] = cm
				}
			}
		},
		remove: func(id string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.communities.List = slices.DeleteFunc(c.communities.List, func(cm domain.Community) bool {
				return cm.ID == id
			})
		},
		setActive: func(id string) string {
			c.mu.Lock()
			defer c.mu.Unlock()
			prev := c.communities.ActiveID
			c.communities.ActiveID = id
			return prev
		},
		activeID: func() string {
			c.mu.RLock()
			defer c.mu.RUnlock()
			return c.communities.ActiveID
		},
		findGlobalID: func() (string, bool) {
			c.mu.RLock()
			defer c.mu.RUnlock()
			for _, cm := range c.communities.List {
				if cm.Level == domain.CommunityLevelGlobal {
					return cm.ID, true
				}
			}
			return "", false
		},
	}
}

// resourceMutations builds the mutation callbacks handed to the resource
// handler set.
func (c *Container) resourceMutations() resourceMutations {
	return resourceMutations{
		begin: func(corr string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.resources.pending = corr
			c.resources.IsLoading = true
			c.resources.Error = ""
		},
		applyList: func(corr string, list []domain.Resource) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.resources.pending {
				return false
			}
			c.resources.List = slices.Clone(list)
			c.resources.IsLoading = false
			c.resources.Error = ""
			c.resources.pending = ""
			return true
		},
		fail: func(corr, msg string) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.resources.pending {
				return false
			}
			c.resources.IsLoading = false
			c.resources.Error = msg
			c.resources.pending = ""
			return true
		},
		complete: func(corr string) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.resources.pending {
				return false
			}
			c.resources.IsLoading = false
			c.resources.Error = ""
			c.resources.pending = ""
			return true
		},
		prepend: func(r domain.Resource) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.resources.List = append([]domain.Resource{r}, c.resources.List...)
		},
		replace: func(r domain.Resource) {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i := range c.resources.List {
				if c.resources.List[i].ID == r.ID {
					c.resources.List[i] = r
				}
			}
		},
		remove: func(id string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.resources.List = slices.DeleteFunc(c.resources.List, func(r domain.Resource) bool {
				return r.ID == id
			})
		},
	}
}

// thanksMutations builds the mutation callbacks handed to the thanks
// handler set.
func (c *Container) thanksMutations() thanksMutations {
	return thanksMutations{
		begin: func(corr string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.thanks.pending = corr
			c.thanks.IsLoading = true
			c.thanks.Error = ""
		},
		applyList: func(corr string, list []domain.Thanks) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.thanks.pending {
				return false
			}
			c.thanks.List = slices.Clone(list)
			c.thanks.IsLoading = false
			c.thanks.Error = ""
			c.thanks.pending = ""
			return true
		},
		fail: func(corr, msg string) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.thanks.pending {
				return false
			}
			c.thanks.IsLoading = false
			c.thanks.Error = msg
			c.thanks.pending = ""
			return true
		},
		complete: func(corr string) bool {
			c.mu.Lock()
			defer c.mu.Unlock()
			if corr != c.thanks.pending {
				return false
			}
			c.thanks.IsLoading = false
			c.thanks.Error = ""
			c.thanks.pending = ""
			return true
		},
		prepend: func(th domain.Thanks) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.thanks.List = append([]domain.Thanks{th}, c.thanks.List...)
		},
		remove: func(id string) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.thanks.List = slices.DeleteFunc(c.thanks.List, func(th domain.Thanks) bool {
				return th.ID == id
			})
		},
	}
}
