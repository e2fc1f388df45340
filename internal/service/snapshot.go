package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
)

// SnapshotService captures a user's flavors and subflavors into immutable
// per-day rows so historical profile pages can be reconstructed.
type SnapshotService struct {
	db      *gorm.DB
	flavors *FlavorService
}

func NewSnapshotService(db *gorm.DB, flavors *FlavorService) *SnapshotService {
	return &SnapshotService{db: db, flavors: flavors}
}

// CreateProfileSnapshot writes the snapshot for (user, date). A snapshot
// that already exists for the day is left untouched.
func (s *SnapshotService) CreateProfileSnapshot(userID uuid.UUID, date string) (*models.ProfileSnapshot, error) {
	var existing models.ProfileSnapshot
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	flavors, err := s.flavors.ListFlavors(userID)
	if err != nil {
		return nil, err
	}
	subflavors, err := s.flavors.ListAllSubflavors(userID)
	if err != nil {
		return nil, err
	}

	snap := models.ProfileSnapshot{
		ID:         uuid.New(),
		UserID:     userID,
		Date:       date,
		Flavors:    flavors,
		Subflavors: subflavors,
	}
	if err := s.db.Create(&snap).Error; err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *SnapshotService) GetProfileSnapshot(userID uuid.UUID, date string) (*models.ProfileSnapshot, error) {
	var snap models.ProfileSnapshot
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// GetProfileSnapshotAt returns the most recent snapshot at or before date.
func (s *SnapshotService) GetProfileSnapshotAt(userID uuid.UUID, date string) (*models.ProfileSnapshot, error) {
	var snap models.ProfileSnapshot
	err := s.db.Where("user_id = ? AND date <= ?", userID, date).
		Order("date DESC").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *SnapshotService) ListSnapshotDates(userID uuid.UUID) ([]string, error) {
	var dates []string
	err := s.db.Model(&models.ProfileSnapshot{}).Where("user_id = ?", userID).
		Order("date ASC").Pluck("date", &dates).Error
	return dates, err
}
