package events

import (
	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// Auth event tags.
const (
	// TopicAuthSignInRequested is emitted when a sign-in is initiated.
	// Payload: SignInRequested.
	TopicAuthSignInRequested topic.Topic = "auth.signin.requested"

	// TopicAuthSignInSucceeded is emitted when a sign-in completes.
	// Payload: SignInSucceeded.
	TopicAuthSignInSucceeded topic.Topic = "auth.signin.success"

	// TopicAuthSignInFailed is emitted when a sign-in fails.
	// Payload: OperationFailed.
	TopicAuthSignInFailed topic.Topic = "auth.signin.failed"

	// TopicAuthSignOutRequested is emitted when a sign-out is initiated.
	// Payload: SignOutRequested.
	TopicAuthSignOutRequested topic.Topic = "auth.signout.requested"

	// TopicAuthSignOutSucceeded is emitted when the session has ended.
	// Payload: SignOutSucceeded.
	TopicAuthSignOutSucceeded topic.Topic = "auth.signout.success"

	// TopicAuthSignOutFailed is emitted when a sign-out fails.
	// Payload: SignOutFailed.
	TopicAuthSignOutFailed topic.Topic = "auth.signout.failed"
)

// SignInRequested carries the sign-in input. The password never leaves the
// collaborator that performs the credential check; only the email rides on
// the event.
type SignInRequested struct {
	Email string
}

// SignInSucceeded carries the established session.
type SignInSucceeded struct {
	Session domain.Session
}

// SignOutRequested carries no data; the session to end is the current one.
type SignOutRequested struct{}

// SignOutSucceeded carries no data.
type SignOutSucceeded struct{}

// SignOutFailed distinguishes retryable from terminal sign-out failures so
// the caller can surface a retry affordance.
type SignOutFailed struct {
	ErrorCode string
	Retryable bool
	Details   string
}
