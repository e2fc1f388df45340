package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account visibility levels.
const (
	AccountOpen    = "open"
	AccountClosed  = "closed"
	AccountPrivate = "private"
)

// Entity visibility levels (flavors, subflavors, ingredients).
const (
	VisibilityPrivate   = "private"
	VisibilityFriends   = "friends"
	VisibilityFollowers = "followers"
	VisibilityPublic    = "public"
)

type User struct {
	ID                uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	Handle            string         `gorm:"size:50;uniqueIndex;not null" json:"handle"`
	DisplayName       string         `gorm:"size:100;not null" json:"display_name"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"not null" json:"-"`
	AccountVisibility string         `gorm:"not null;default:'open'" json:"account_visibility"`
	// ViewID is the stable identifier used in read-only shareable URLs.
	ViewID   uuid.UUID `gorm:"type:varchar(36);uniqueIndex;not null" json:"view_id"`
	Timezone string    `gorm:"size:64;not null;default:'UTC'" json:"timezone"`
}

// ValidAccountVisibility reports whether v is a known account visibility level.
func ValidAccountVisibility(v string) bool {
	switch v {
	case AccountOpen, AccountClosed, AccountPrivate:
		return true
	}
	return false
}

// ValidVisibility reports whether v is a known entity visibility level.
func ValidVisibility(v string) bool {
	switch v {
	case VisibilityPrivate, VisibilityFriends, VisibilityFollowers, VisibilityPublic:
		return true
	}
	return false
}
