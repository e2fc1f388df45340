package service

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
)

type FlavorService struct {
	db *gorm.DB
}

func NewFlavorService(db *gorm.DB) *FlavorService {
	return &FlavorService{db: db}
}

// FlavorInput carries create/update fields for flavors and subflavors.
type FlavorInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Importance  int    `json:"importance"`
	TargetMix   int    `json:"target_mix"`
	Visibility  string `json:"visibility"`
	OrderIndex  int    `json:"order_index"`
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (in *FlavorInput) sanitize() error {
	if n := utf8.RuneCountInString(in.Name); n < 2 || n > 40 {
		return validationErr("name must be 2-40 characters")
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		return validationErr("description must be at most 500 characters")
	}
	if in.Visibility == "" {
		in.Visibility = models.VisibilityPrivate
	}
	if !models.ValidVisibility(in.Visibility) {
		return validationErr("invalid visibility")
	}
	in.Importance = clamp(in.Importance, 0, 100)
	in.TargetMix = clamp(in.TargetMix, 0, 100)
	return nil
}

// flavorOrder is the listing order everywhere flavors appear.
const flavorOrder = "importance DESC, order_index ASC, created_at ASC"

func (s *FlavorService) ListFlavors(userID uuid.UUID) ([]models.Flavor, error) {
	var flavors []models.Flavor
	if err := s.db.Where("user_id = ?", userID).Order(flavorOrder).Find(&flavors).Error; err != nil {
		return nil, err
	}
	return flavors, nil
}

func (s *FlavorService) GetFlavor(id uuid.UUID) (*models.Flavor, error) {
	var flavor models.Flavor
	if err := s.db.First(&flavor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &flavor, nil
}

func (s *FlavorService) CreateFlavor(userID uuid.UUID, in FlavorInput) (*models.Flavor, error) {
	if err := in.sanitize(); err != nil {
		return nil, err
	}
	flavor := models.Flavor{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		Importance:  in.Importance,
		TargetMix:   in.TargetMix,
		Visibility:  in.Visibility,
		OrderIndex:  in.OrderIndex,
	}
	if err := s.db.Create(&flavor).Error; err != nil {
		return nil, err
	}
	return &flavor, nil
}

func (s *FlavorService) UpdateFlavor(userID, id uuid.UUID, in FlavorInput) (*models.Flavor, error) {
	flavor, err := s.GetFlavor(id)
	if err != nil {
		return nil, err
	}
	if flavor.UserID != userID {
		return nil, ErrNotOwner
	}
	if err := in.sanitize(); err != nil {
		return nil, err
	}
	flavor.Name = in.Name
	flavor.Description = in.Description
	flavor.Color = in.Color
	flavor.Icon = in.Icon
	flavor.Importance = in.Importance
	flavor.TargetMix = in.TargetMix
	flavor.Visibility = in.Visibility
	flavor.OrderIndex = in.OrderIndex
	if err := s.db.Save(flavor).Error; err != nil {
		return nil, err
	}
	return flavor, nil
}

// DeleteFlavor removes a flavor and its subflavors.
func (s *FlavorService) DeleteFlavor(userID, id uuid.UUID) error {
	flavor, err := s.GetFlavor(id)
	if err != nil {
		return err
	}
	if flavor.UserID != userID {
		return ErrNotOwner
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("flavor_id = ?", id).Delete(&models.Subflavor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Flavor{}, "id = ?", id).Error
	})
}

func (s *FlavorService) ListSubflavors(flavorID uuid.UUID) ([]models.Subflavor, error) {
	var subs []models.Subflavor
	if err := s.db.Where("flavor_id = ?", flavorID).Order(flavorOrder).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *FlavorService) ListAllSubflavors(userID uuid.UUID) ([]models.Subflavor, error) {
	var subs []models.Subflavor
	if err := s.db.Where("user_id = ?", userID).Order(flavorOrder).Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *FlavorService) GetSubflavor(id uuid.UUID) (*models.Subflavor, error) {
	var sub models.Subflavor
	if err := s.db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (s *FlavorService) CreateSubflavor(userID, flavorID uuid.UUID, in FlavorInput) (*models.Subflavor, error) {
	flavor, err := s.GetFlavor(flavorID)
	if err != nil {
		return nil, err
	}
	if flavor.UserID != userID {
		return nil, ErrNotOwner
	}
	if err := in.sanitize(); err != nil {
		return nil, err
	}
	sub := models.Subflavor{
		ID:          uuid.New(),
		UserID:      userID,
		FlavorID:    flavorID,
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		Icon:        in.Icon,
		Importance:  in.Importance,
		TargetMix:   in.TargetMix,
		Visibility:  in.Visibility,
		OrderIndex:  in.OrderIndex,
	}
	if err := s.db.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *FlavorService) UpdateSubflavor(userID, id uuid.UUID, in FlavorInput) (*models.Subflavor, error) {
	sub, err := s.GetSubflavor(id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, ErrNotOwner
	}
	if err := in.sanitize(); err != nil {
		return nil, err
	}
	sub.Name = in.Name
	sub.Description = in.Description
	sub.Color = in.Color
	sub.Icon = in.Icon
	sub.Importance = in.Importance
	sub.TargetMix = in.TargetMix
	sub.Visibility = in.Visibility
	sub.OrderIndex = in.OrderIndex
	if err := s.db.Save(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *FlavorService) DeleteSubflavor(userID, id uuid.UUID) error {
	sub, err := s.GetSubflavor(id)
	if err != nil {
		return err
	}
	if sub.UserID != userID {
		return ErrNotOwner
	}
	return s.db.Delete(&models.Subflavor{}, "id = ?", id).Error
}
