package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
)

// Icon payloads up to this size are stored inline as data URLs; anything
// larger goes to S3.
const inlineIconCap = 8 * 1024

// S3Client is the subset of the S3 API the icon service uses.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// IconService stores reusable user icons and named color presets.
type IconService struct {
	db     *gorm.DB
	s3     S3Client
	bucket string
}

// NewIconService creates an icon service. s3Client may be nil, in which
// case every icon is stored inline.
func NewIconService(db *gorm.DB, s3Client S3Client, bucket string) *IconService {
	return &IconService{db: db, s3: s3Client, bucket: bucket}
}

func (s *IconService) ListIcons(userID uuid.UUID) ([]models.UserIcon, error) {
	var icons []models.UserIcon
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&icons).Error
	return icons, err
}

// CreateIcon stores an uploaded icon. data is a base64 data URL
// ("data:image/png;base64,...").
func (s *IconService) CreateIcon(ctx context.Context, userID uuid.UUID, name, data string) (*models.UserIcon, error) {
	if name == "" || len(name) > 60 {
		return nil, validationErr("icon name must be 1-60 characters")
	}
	if !strings.HasPrefix(data, "data:image/") {
		return nil, validationErr("icon data must be an image data URL")
	}

	url := data
	if len(data) > inlineIconCap && s.s3 != nil {
		uploaded, err := s.uploadToS3(ctx, data)
		if err != nil {
			log.Printf("[IconService] S3 upload failed, storing inline: %v", err)
		} else {
			url = uploaded
		}
	}

	icon := models.UserIcon{ID: uuid.New(), UserID: userID, Name: name, URL: url}
	if err := s.db.Create(&icon).Error; err != nil {
		return nil, err
	}
	return &icon, nil
}

func (s *IconService) DeleteIcon(userID, id uuid.UUID) error {
	var icon models.UserIcon
	if err := s.db.First(&icon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if icon.UserID != userID {
		return ErrNotOwner
	}
	return s.db.Delete(&models.UserIcon{}, "id = ?", id).Error
}

func (s *IconService) uploadToS3(ctx context.Context, dataURL string) (string, error) {
	idx := strings.Index(dataURL, ";base64,")
	if idx < 0 {
		return "", fmt.Errorf("malformed data URL")
	}
	contentType := strings.TrimPrefix(dataURL[:idx], "data:")
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return "", fmt.Errorf("failed to decode icon data: %w", err)
	}

	ext := "png"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	key := fmt.Sprintf("icons/%s.%s", uuid.New().String(), ext)

	_, err = s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

// ColorPresetInput is one named color in a replace-all save.
type ColorPresetInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *IconService) ListColorPresets(userID uuid.UUID) ([]models.ColorPreset, error) {
	var presets []models.ColorPreset
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&presets).Error
	return presets, err
}

// SaveColorPresets replaces the user's preset list wholesale.
func (s *IconService) SaveColorPresets(userID uuid.UUID, presets []ColorPresetInput) ([]models.ColorPreset, error) {
	for _, p := range presets {
		if p.Name == "" || len(p.Name) > 40 || p.Color == "" {
			return nil, validationErr("preset needs a name (1-40 characters) and a color")
		}
	}
	var saved []models.ColorPreset
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.ColorPreset{}).Error; err != nil {
			return err
		}
		for _, p := range presets {
			preset := models.ColorPreset{ID: uuid.New(), UserID: userID, Name: p.Name, Color: p.Color}
			if err := tx.Create(&preset).Error; err != nil {
				return err
			}
			saved = append(saved, preset)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
