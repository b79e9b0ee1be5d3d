package domain

import "time"

// Resource is a shareable item offered within a community.
type Resource struct {
	ID          string     `json:"id"`
	CommunityID string     `json:"communityId"`
	OwnerID     string     `json:"ownerId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// Deleted reports whether the resource is soft-deleted.
func (r Resource) Deleted() bool {
	return r.DeletedAt != nil
}

// ResourceInput is the create/update input for a resource.
type ResourceInput struct {
	CommunityID string `json:"communityId" validate:"required"`
	Title       string `json:"title" validate:"required,min=2,max=160"`
	Description string `json:"description"`
	Category    string `json:"category"`
}
