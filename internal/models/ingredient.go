package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a reusable habit/activity definition with a usefulness score.
// Icon holds either an emoji or the URL of a stored image.
type Ingredient struct {
	ID               uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	UserID           uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title            string         `gorm:"size:60;not null" json:"title"`
	ShortDescription string         `gorm:"size:200" json:"short_description"`
	LongDescription  string         `gorm:"type:text" json:"long_description"`
	Usefulness       int            `gorm:"not null;default:50" json:"usefulness"`
	Icon             string         `gorm:"type:text" json:"icon"`
	Visibility       string         `gorm:"not null;default:'private'" json:"visibility"`
}

// IngredientRevision is an append-only copy of an ingredient written on
// every create and update. It answers "what did this look like on date X".
type IngredientRevision struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
	IngredientID     uuid.UUID `gorm:"type:varchar(36);not null;index" json:"ingredient_id"`
	UserID           uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title            string    `gorm:"size:60;not null" json:"title"`
	ShortDescription string    `gorm:"size:200" json:"short_description"`
	LongDescription  string    `gorm:"type:text" json:"long_description"`
	Usefulness       int       `gorm:"not null" json:"usefulness"`
	Icon             string    `gorm:"type:text" json:"icon"`
	Visibility       string    `gorm:"not null" json:"visibility"`
}
