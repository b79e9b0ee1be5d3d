package state

import (
	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event/events"
)

// AuthSlice is the session domain's state.
type AuthSlice struct {
	// Session is the authenticated session, or nil when signed out.
	Session *domain.Session

	// IsLoading is true while a sign-in or sign-out request is pending.
	IsLoading bool

	// Error is the last operation failure, cleared by the next request.
	Error string

	// SignOutFailure carries the structured sign-out failure shape so the
	// caller can distinguish retryable from terminal failures.
	SignOutFailure *events.SignOutFailed

	// pending is the correlation token of the in-flight request.
	pending string
}

// CommunitiesSlice is the community domain's state.
type CommunitiesSlice struct {
	// List holds the authoritative display copies, newest first.
	List []domain.Community

	// ActiveID is the currently selected community, or empty.
	ActiveID string

	// IsLoading is true while a community request is pending.
	IsLoading bool

	// Error is the last operation failure, cleared by the next request.
	Error string

	pending string
}

// ResourcesSlice is the shared-resource domain's state.
type ResourcesSlice struct {
	List      []domain.Resource
	IsLoading bool
	Error     string

	pending string
}

// ThanksSlice is the gratitude domain's state.
type ThanksSlice struct {
	List      []domain.Thanks
	IsLoading bool
	Error     string

	pending string
}
