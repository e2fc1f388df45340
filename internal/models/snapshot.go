package models

import (
	"time"

	"github.com/google/uuid"
)

// ProfileSnapshot is an immutable daily capture of a user's flavors and
// subflavors. At most one row exists per (user, date); a second capture on
// the same day is a no-op.
type ProfileSnapshot struct {
	ID         uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	UserID     uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_profile_snap_user_date" json:"user_id"`
	Date       string      `gorm:"size:10;not null;uniqueIndex:idx_profile_snap_user_date" json:"date"`
	Flavors    []Flavor    `gorm:"serializer:json" json:"flavors"`
	Subflavors []Subflavor `gorm:"serializer:json" json:"subflavors"`
}
