package events

import (
	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// Thanks event tags.
const (
	// TopicThanksFetchRequested is emitted when a bulk fetch is initiated.
	// Payload: ThanksFetchRequested.
	TopicThanksFetchRequested topic.Topic = "thanks.fetch.requested"

	// TopicThanksFetchSucceeded is emitted with the fetched collection.
	// Payload: ThanksFetchSucceeded.
	TopicThanksFetchSucceeded topic.Topic = "thanks.fetch.success"

	// TopicThanksFetchFailed is emitted when a fetch fails.
	// Payload: OperationFailed.
	TopicThanksFetchFailed topic.Topic = "thanks.fetch.failed"

	// TopicThanksCreateRequested is emitted when a thanks note is sent.
	// Payload: ThanksCreateRequested.
	TopicThanksCreateRequested topic.Topic = "thanks.create.requested"

	// TopicThanksCreated is emitted with the new thanks note.
	// Payload: ThanksCreated.
	TopicThanksCreated topic.Topic = "thanks.created"

	// TopicThanksCreateFailed is emitted when a create fails.
	// Payload: OperationFailed.
	TopicThanksCreateFailed topic.Topic = "thanks.create.failed"

	// TopicThanksDeleteRequested is emitted when a delete is initiated.
	// Payload: ThanksDeleteRequested.
	TopicThanksDeleteRequested topic.Topic = "thanks.delete.requested"

	// TopicThanksDeleted names the removed thanks note.
	// Payload: ThanksDeleted.
	TopicThanksDeleted topic.Topic = "thanks.deleted"

	// TopicThanksDeleteFailed is emitted when a delete fails.
	// Payload: OperationFailed.
	TopicThanksDeleteFailed topic.Topic = "thanks.delete.failed"
)

// ThanksFetchRequested scopes the fetch to one community.
type ThanksFetchRequested struct {
	CommunityID string
}

// ThanksFetchSucceeded carries the fetched collection.
type ThanksFetchSucceeded struct {
	Thanks []domain.Thanks
}

// ThanksCreateRequested carries the create input.
type ThanksCreateRequested struct {
	Input domain.ThanksInput
}

// ThanksCreated carries the new thanks note.
type ThanksCreated struct {
	Thanks domain.Thanks
}

// ThanksDeleteRequested names the thanks note to delete.
type ThanksDeleteRequested struct {
	ID string
}

// ThanksDeleted names the removed thanks note.
type ThanksDeleted struct {
	ID string
}
