package domain

import "time"

// CommunityLevel places a community in the platform hierarchy.
type CommunityLevel string

const (
	// CommunityLevelGlobal is the single top-level community every user
	// belongs to. It becomes the default active selection after a fetch.
	CommunityLevelGlobal CommunityLevel = "global"

	// CommunityLevelNeighborhood is a local community.
	CommunityLevelNeighborhood CommunityLevel = "neighborhood"
)

// Location is a point in decimal degrees.
type Location struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Community is a group of neighbors sharing resources.
type Community struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Level       CommunityLevel `json:"level"`
	Location    *Location      `json:"location,omitempty"`
	OwnerID     string         `json:"ownerId"`
	CreatedAt   time.Time      `json:"createdAt"`
	DeletedAt   *time.Time     `json:"deletedAt,omitempty"`
}

// Deleted reports whether the community is soft-deleted.
func (c Community) Deleted() bool {
	return c.DeletedAt != nil
}

// CommunityInput is the create/update input for a community.
type CommunityInput struct {
	Name        string         `json:"name" validate:"required,min=2,max=120"`
	Description string         `json:"description"`
	Level       CommunityLevel `json:"level" validate:"omitempty,oneof=global neighborhood"`
	Location    *Location      `json:"location"`
}
