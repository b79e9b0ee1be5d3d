package events

import (
	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// Community event tags.
const (
	// TopicCommunityFetchRequested is emitted when a bulk fetch is
	// initiated. Payload: CommunityFetchRequested.
	TopicCommunityFetchRequested topic.Topic = "community.fetch.requested"

	// TopicCommunityFetchSucceeded is emitted with the fetched collection.
	// Payload: CommunityFetchSucceeded.
	TopicCommunityFetchSucceeded topic.Topic = "community.fetch.success"

	// TopicCommunityFetchFailed is emitted when a fetch fails.
	// Payload: OperationFailed.
	TopicCommunityFetchFailed topic.Topic = "community.fetch.failed"

	// TopicCommunityCreateRequested is emitted when a create is initiated.
	// Payload: CommunityCreateRequested.
	TopicCommunityCreateRequested topic.Topic = "community.create.requested"

	// TopicCommunityCreated is emitted with the newly created community.
	// Payload: CommunityCreated.
	TopicCommunityCreated topic.Topic = "community.created"

	// TopicCommunityCreateFailed is emitted when a create fails.
	// Payload: OperationFailed.
	TopicCommunityCreateFailed topic.Topic = "community.create.failed"

	// TopicCommunityUpdateRequested is emitted when an update is initiated.
	// Payload: CommunityUpdateRequested.
	TopicCommunityUpdateRequested topic.Topic = "community.update.requested"

	// TopicCommunityUpdated is emitted with the updated community.
	// Payload: CommunityUpdated.
	TopicCommunityUpdated topic.Topic = "community.updated"

	// TopicCommunityUpdateFailed is emitted when an update fails.
	// Payload: OperationFailed.
	TopicCommunityUpdateFailed topic.Topic = "community.update.failed"

	// TopicCommunityDeleteRequested is emitted when a delete is initiated.
	// Payload: CommunityDeleteRequested.
	TopicCommunityDeleteRequested topic.Topic = "community.delete.requested"

	// TopicCommunityDeleted is emitted once the community is soft-deleted.
	// Payload: CommunityDeleted.
	TopicCommunityDeleted topic.Topic = "community.deleted"

	// TopicCommunityDeleteFailed is emitted when a delete fails.
	// Payload: OperationFailed.
	TopicCommunityDeleteFailed topic.Topic = "community.delete.failed"

	// TopicCommunityActiveChangeRequested asks the container to change the
	// active community selection. Payload: ActiveCommunityChangeRequested.
	TopicCommunityActiveChangeRequested topic.Topic = "community.active.change.requested"

	// TopicCommunityActiveChanged announces a completed selection change.
	// It is the only event the container itself emits.
	// Payload: ActiveCommunityChanged.
	TopicCommunityActiveChanged topic.Topic = "community.active.changed"
)

// CommunityFetchRequested carries no parameters; a fetch always returns the
// caller's full visible collection.
type CommunityFetchRequested struct{}

// CommunityFetchSucceeded carries the fetched collection.
type CommunityFetchSucceeded struct {
	Communities []domain.Community
}

// CommunityCreateRequested carries the create input.
type CommunityCreateRequested struct {
	Input domain.CommunityInput
}

// CommunityCreated carries the new community.
type CommunityCreated struct {
	Community domain.Community
}

// CommunityUpdateRequested carries the target id and new field values.
type CommunityUpdateRequested struct {
	ID    string
	Input domain.CommunityInput
}

// CommunityUpdated carries the community after the update.
type CommunityUpdated struct {
	Community domain.Community
}

// CommunityDeleteRequested names the community to delete.
type CommunityDeleteRequested struct {
	ID string
}

// CommunityDeleted names the deleted community.
type CommunityDeleted struct {
	ID string
}

// ActiveCommunityChangeRequested names the community to select.
type ActiveCommunityChangeRequested struct {
	CommunityID string
}

// ActiveCommunityChanged reports the applied selection change.
type ActiveCommunityChanged struct {
	CommunityID string
	PreviousID  string
}
