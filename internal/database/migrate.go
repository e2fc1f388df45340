package database

import (
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
)

// RunMigrations brings the schema up to date.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Flavor{},
		&models.Subflavor{},
		&models.Ingredient{},
		&models.IngredientRevision{},
		&models.Plan{},
		&models.PlanBlock{},
		&models.PlanSnapshot{},
		&models.ProfileSnapshot{},
		&models.Follow{},
		&models.Notification{},
		&models.UserIcon{},
		&models.ColorPreset{},
	)
}
