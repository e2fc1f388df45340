package models

import (
	"time"

	"github.com/google/uuid"
)

// UserIcon is a reusable icon uploaded by a user. Small images are kept
// inline as a data URL; larger uploads land in S3 and URL points there.
type UserIcon struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string    `gorm:"size:60;not null" json:"name"`
	URL       string    `gorm:"type:text;not null" json:"url"`
}

// ColorPreset is a user-named color for plan blocks.
type ColorPreset struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string    `gorm:"size:40;not null" json:"name"`
	Color     string    `gorm:"size:20;not null" json:"color"`
}
