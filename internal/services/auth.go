package services

import (
	"errors"
	"time"

	"gig-marketplace/backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	LoginUser(db *gorm.DB, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
}

type AuthServiceImpl struct {
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(secret string, tokenTTL time.Duration) *AuthServiceImpl {
	return &AuthServiceImpl{secret: secret, tokenTTL: tokenTTL}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

// LoginUser authenticates by email and password. Unverified accounts are
// rejected with ErrNotVerified so the handler can answer 403.
func (s *AuthServiceImpl) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}
	if !VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GenerateToken issues an HS256 bearer token carrying the user id and role.
func (s *AuthServiceImpl) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":   user.ID.String(),
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
