package service

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
)

type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

type IngredientInput struct {
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	Usefulness       int    `json:"usefulness"`
	Icon             string `json:"icon"`
	Visibility       string `json:"visibility"`
}

func (in *IngredientInput) sanitize() error {
	if n := utf8.RuneCountInString(in.Title); n < 2 || n > 60 {
		return validationErr("title must be 2-60 characters")
	}
	if utf8.RuneCountInString(in.ShortDescription) > 200 {
		return validationErr("short description must be at most 200 characters")
	}
	if in.Visibility == "" {
		in.Visibility = models.VisibilityPrivate
	}
	if !models.ValidVisibility(in.Visibility) {
		return validationErr("invalid visibility")
	}
	in.Usefulness = clamp(in.Usefulness, 0, 100)
	return nil
}

func (s *IngredientService) List(userID uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.Where("user_id = ?", userID).
		Order("usefulness DESC, created_at ASC").Find(&ingredients).Error
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) Get(id uuid.UUID) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := s.db.First(&ing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ing, nil
}

func (s *IngredientService) Create(userID uuid.UUID, in IngredientInput) (*models.Ingredient, error) {
	if err := in.sanitize(); err != nil {
		return nil, err
	}
	ing := models.Ingredient{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		Usefulness:       in.Usefulness,
		Icon:             in.Icon,
		Visibility:       in.Visibility,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ing).Error; err != nil {
			return err
		}
		return tx.Create(revisionOf(&ing)).Error
	})
	if err != nil {
		return nil, err
	}
	return &ing, nil
}

func (s *IngredientService) Update(userID, id uuid.UUID, in IngredientInput) (*models.Ingredient, error) {
	ing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if ing.UserID != userID {
		return nil, ErrNotOwner
	}
	if err := in.sanitize(); err != nil {
		return nil, err
	}
	ing.Title = in.Title
	ing.ShortDescription = in.ShortDescription
	ing.LongDescription = in.LongDescription
	ing.Usefulness = in.Usefulness
	ing.Icon = in.Icon
	ing.Visibility = in.Visibility
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ing).Error; err != nil {
			return err
		}
		return tx.Create(revisionOf(ing)).Error
	})
	if err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *IngredientService) Delete(userID, id uuid.UUID) error {
	ing, err := s.Get(id)
	if err != nil {
		return err
	}
	if ing.UserID != userID {
		return ErrNotOwner
	}
	return s.db.Delete(&models.Ingredient{}, "id = ?", id).Error
}

// AsOf returns the most recent revision of an ingredient at or before t,
// or ErrNotFound when the ingredient did not exist yet.
func (s *IngredientService) AsOf(id uuid.UUID, t time.Time) (*models.IngredientRevision, error) {
	var rev models.IngredientRevision
	err := s.db.Where("ingredient_id = ? AND created_at <= ?", id, t).
		Order("created_at DESC").First(&rev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// History returns all revisions of an ingredient, newest first.
func (s *IngredientService) History(id uuid.UUID) ([]models.IngredientRevision, error) {
	var revs []models.IngredientRevision
	if err := s.db.Where("ingredient_id = ?", id).Order("created_at DESC").Find(&revs).Error; err != nil {
		return nil, err
	}
	return revs, nil
}

func revisionOf(ing *models.Ingredient) *models.IngredientRevision {
	return &models.IngredientRevision{
		ID:               uuid.New(),
		IngredientID:     ing.ID,
		UserID:           ing.UserID,
		Title:            ing.Title,
		ShortDescription: ing.ShortDescription,
		LongDescription:  ing.LongDescription,
		Usefulness:       ing.Usefulness,
		Icon:             ing.Icon,
		Visibility:       ing.Visibility,
	}
}
