package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/models"
	"github.com/guc1/A-Piece-Of-Cake-sub000/internal/types"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

// Register creates a user with a fresh ViewID and an open account, hashes
// the password and returns the user plus a session token.
func (s *AuthService) Register(handle, displayName, email, password, timezone string) (*models.User, string, error) {
	if len(handle) < 2 || len(handle) > 50 {
		return nil, "", validationErr("handle must be 2-50 characters")
	}
	if len(password) < 6 {
		return nil, "", validationErr("password must be at least 6 characters")
	}
	if timezone == "" {
		timezone = "UTC"
	}

	var existing models.User
	if err := s.db.Where("email = ? OR handle = ?", email, handle).First(&existing).Error; err == nil {
		return nil, "", validationErr("user already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		ID:                uuid.New(),
		Handle:            handle,
		DisplayName:       displayName,
		Email:             email,
		PasswordHash:      string(hashed),
		AccountVisibility: models.AccountOpen,
		ViewID:            uuid.New(),
		Timezone:          timezone,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(&types.TokenClaims{UserID: user.ID, Handle: user.Handle})
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.GenerateToken(&types.TokenClaims{UserID: user.ID, Handle: user.Handle})
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(24 * time.Hour))
	claims.IssuedAt = jwt.NewNumericDate(time.Now())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByViewID resolves a shareable view id to its user.
func (s *AuthService) GetUserByViewID(viewID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "view_id = ?", viewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateAccountVisibility changes who can see the user's profile.
func (s *AuthService) UpdateAccountVisibility(userID uuid.UUID, visibility string) error {
	if !models.ValidAccountVisibility(visibility) {
		return validationErr("invalid account visibility")
	}
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("account_visibility", visibility).Error
}
