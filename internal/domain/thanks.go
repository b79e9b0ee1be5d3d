package domain

import "time"

// Thanks is a gratitude note sent from one member to another.
type Thanks struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"communityId"`
	FromUserID  string    `json:"fromUserId"`
	ToUserID    string    `json:"toUserId"`
	ResourceID  string    `json:"resourceId,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ThanksInput is the create input for a thanks note.
type ThanksInput struct {
	CommunityID string `json:"communityId" validate:"required"`
	ToUserID    string `json:"toUserId" validate:"required"`
	ResourceID  string `json:"resourceId"`
	Message     string `json:"message" validate:"required,max=500"`
}
