package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan is one user's schedule for one calendar date. Date is stored as
// YYYY-MM-DD in the user's time zone.
type Plan struct {
	ID                 uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	UserID             uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_plan_user_date" json:"user_id"`
	Date               string      `gorm:"size:10;not null;uniqueIndex:idx_plan_user_date" json:"date"`
	DailyAim           string      `gorm:"size:500" json:"daily_aim"`
	DailyIngredientIDs []string    `gorm:"serializer:json" json:"daily_ingredient_ids"`
	DayFeedback        string      `gorm:"type:text" json:"day_feedback"`
	Blocks             []PlanBlock `gorm:"foreignKey:PlanID" json:"blocks"`
}

// PlanBlock is a single timed activity inside a plan. End must be after
// Start; overlapping blocks are allowed.
type PlanBlock struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PlanID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"plan_id"`
	Title         string    `gorm:"size:60" json:"title"`
	Description   string    `gorm:"size:500" json:"description"`
	Color         string    `gorm:"size:20" json:"color"`
	ColorPreset   string    `gorm:"size:40" json:"color_preset"`
	StartAt       time.Time `gorm:"not null" json:"start_at"`
	EndAt         time.Time `gorm:"not null" json:"end_at"`
	IngredientIDs []string  `gorm:"serializer:json" json:"ingredient_ids"`
	Feedback      string    `gorm:"type:text" json:"feedback"`
}

// PlanSnapshot freezes the block set of one plan as of a snapshot date,
// so "what my Tuesday looked like as of last Monday" can be answered.
type PlanSnapshot struct {
	ID                 uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	UserID             uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_snap_user_dates" json:"user_id"`
	SnapshotDate       string      `gorm:"size:10;not null;uniqueIndex:idx_snap_user_dates" json:"snapshot_date"`
	PlanDate           string      `gorm:"size:10;not null;uniqueIndex:idx_snap_user_dates" json:"plan_date"`
	DailyAim           string      `gorm:"size:500" json:"daily_aim"`
	DailyIngredientIDs []string    `gorm:"serializer:json" json:"daily_ingredient_ids"`
	Blocks             []PlanBlock `gorm:"serializer:json" json:"blocks"`
}
