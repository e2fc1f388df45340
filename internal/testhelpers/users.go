package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
)

// CreateTestUser inserts a user directly, bypassing registration.
func CreateTestUser(t *testing.T, db *gorm.DB, handle string) *models.User {
	t.Helper()

	user := &models.User{
		ID:                uuid.New(),
		Handle:            handle,
		DisplayName:       handle,
		Email:             handle + "@example.com",
		PasswordHash:      "x",
		AccountVisibility: models.AccountOpen,
		ViewID:            uuid.New(),
		Timezone:          "UTC",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user %q: %v", handle, err)
	}
	return user
}
