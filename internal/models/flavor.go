package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flavor is a top-level life-area category owned by a user.
type Flavor struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name        string         `gorm:"size:40;not null" json:"name"`
	Description string         `gorm:"size:500" json:"description"`
	Color       string         `gorm:"size:20" json:"color"`
	Icon        string         `gorm:"type:text" json:"icon"`
	Importance  int            `gorm:"not null;default:50" json:"importance"`
	TargetMix   int            `gorm:"not null;default:0" json:"target_mix"`
	Visibility  string         `gorm:"not null;default:'private'" json:"visibility"`
	OrderIndex  int            `gorm:"not null;default:0" json:"order_index"`
}

// Subflavor is a sub-area nested under a flavor.
type Subflavor struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	FlavorID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"flavor_id"`
	Name        string         `gorm:"size:40;not null" json:"name"`
	Description string         `gorm:"size:500" json:"description"`
	Color       string         `gorm:"size:20" json:"color"`
	Icon        string         `gorm:"type:text" json:"icon"`
	Importance  int            `gorm:"not null;default:50" json:"importance"`
	TargetMix   int            `gorm:"not null;default:0" json:"target_mix"`
	Visibility  string         `gorm:"not null;default:'private'" json:"visibility"`
	OrderIndex  int            `gorm:"not null;default:0" json:"order_index"`
}
