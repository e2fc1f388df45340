package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow edge states.
const (
	FollowPending  = "pending"
	FollowAccepted = "accepted"
)

// Notification types.
const (
	NotifFollowRequest  = "follow_request"
	NotifFollowAccepted = "follow_accepted"
	NotifFollowDeclined = "follow_declined"
	NotifUnfollow       = "unfollow"
)

// Follow is a directed edge from follower to following. Friendship is two
// accepted edges, one in each direction.
type Follow struct {
	FollowerID  uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"follower_id"`
	FollowingID uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"following_id"`
	Status      string    `gorm:"size:20;not null" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Notification is an inbox entry produced by follow state transitions.
type Notification struct {
	ID         uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	ToUserID   uuid.UUID  `gorm:"type:varchar(36);not null;index" json:"to_user_id"`
	FromUserID uuid.UUID  `gorm:"type:varchar(36);not null" json:"from_user_id"`
	Type       string     `gorm:"size:30;not null" json:"type"`
	ReadAt     *time.Time `json:"read_at"`
}
