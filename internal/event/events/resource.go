package events

import (
	"github.com/commonweal/commonweal/internal/domain"
	"github.com/commonweal/commonweal/internal/event/topic"
)

// Resource event tags.
const (
	// TopicResourceFetchRequested is emitted when a bulk fetch is
	// initiated. Payload: ResourceFetchRequested.
	TopicResourceFetchRequested topic.Topic = "resource.fetch.requested"

	// TopicResourceFetchSucceeded is emitted with the fetched collection.
	// Payload: ResourceFetchSucceeded.
	TopicResourceFetchSucceeded topic.Topic = "resource.fetch.success"

	// TopicResourceFetchFailed is emitted when a fetch fails.
	// Payload: OperationFailed.
	TopicResourceFetchFailed topic.Topic = "resource.fetch.failed"

	// TopicResourceCreateRequested is emitted when a create is initiated.
	// Payload: ResourceCreateRequested.
	TopicResourceCreateRequested topic.Topic = "resource.create.requested"

	// TopicResourceCreated is emitted with the newly created resource.
	// Payload: ResourceCreated.
	TopicResourceCreated topic.Topic = "resource.created"

	// TopicResourceCreateFailed is emitted when a create fails.
	// Payload: OperationFailed.
	TopicResourceCreateFailed topic.Topic = "resource.create.failed"

	// TopicResourceUpdateRequested is emitted when an update is initiated.
	// Payload: ResourceUpdateRequested.
	TopicResourceUpdateRequested topic.Topic = "resource.update.requested"

	// TopicResourceUpdated is emitted with the updated resource.
	// Payload: ResourceUpdated.
	TopicResourceUpdated topic.Topic = "resource.updated"

	// TopicResourceUpdateFailed is emitted when an update fails.
	// Payload: OperationFailed.
	TopicResourceUpdateFailed topic.Topic = "resource.update.failed"

	// TopicResourceDeleteRequested is emitted when a delete is initiated.
	// Payload: ResourceDeleteRequested.
	TopicResourceDeleteRequested topic.Topic = "resource.delete.requested"

	// TopicResourceDeleted is emitted once the resource is soft-deleted.
	// Payload: ResourceDeleted.
	TopicResourceDeleted topic.Topic = "resource.deleted"

	// TopicResourceDeleteFailed is emitted when a delete fails.
	// Payload: OperationFailed.
	TopicResourceDeleteFailed topic.Topic = "resource.delete.failed"
)

// ResourceFetchRequested scopes the fetch to one community.
type ResourceFetchRequested struct {
	CommunityID string
}

// ResourceFetchSucceeded carries the fetched collection.
type ResourceFetchSucceeded struct {
	Resources []domain.Resource
}

// ResourceCreateRequested carries the create input.
type ResourceCreateRequested struct {
	Input domain.ResourceInput
}

// ResourceCreated carries the new resource.
type ResourceCreated struct {
	Resource domain.Resource
}

// ResourceUpdateRequested carries the target id and new field values.
type ResourceUpdateRequested struct {
	ID    string
	Input domain.ResourceInput
}

// ResourceUpdated carries the resource after the update.
type ResourceUpdated struct {
	Resource domain.Resource
}

// ResourceDeleteRequested names the resource to delete.
type ResourceDeleteRequested struct {
	ID string
}

// ResourceDeleted names the deleted resource.
type ResourceDeleted struct {
	ID string
}
