package services

import (
	"errors"
	"log"
	"time"

	"gig-marketplace/backend/internal/models"

	"github.com/gofrs/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegistrationRequest struct {
	Name      string  `form:"name" binding:"required,min=1,max=100"`
	Email     string  `form:"email" binding:"required,email"`
	Password  string  `form:"password" binding:"required,min=6"`
	Role      string  `form:"role"`
	Location  string  `form:"location"`
	Latitude  float64 `form:"latitude"`
	Longitude float64 `form:"longitude"`
	Avatar    string  `form:"-"`
}

type RegisterService interface {
	RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error)
}

type RegisterServiceImpl struct {
	mailer     OTPMailer
	otpTTL     time.Duration
	bcryptCost int
}

func NewRegisterService(mailer OTPMailer, otpTTL time.Duration, bcryptCost int) *RegisterServiceImpl {
	return &RegisterServiceImpl{mailer: mailer, otpTTL: otpTTL, bcryptCost: bcryptCost}
}

// RegisterUser creates an unverified account and issues its first OTP
// challenge. The OTP email is queued, not sent inline.
func (s *RegisterServiceImpl) RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error) {
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	code, err := GenerateOTP()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.otpTTL)

	role := req.Role
	if role == "" {
		role = "user"
	}

	user := models.User{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         req.Name,
		Email:        req.Email,
		Password:     hashed,
		Role:         role,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Avatar:       req.Avatar,
		IsVerified:   false,
		OTPCode:      code,
		OTPExpiresAt: &expiresAt,
		OTPPurpose:   models.OTPPurposeVerification,
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.mailer.EnqueueOTP(user.Email, code, models.OTPPurposeVerification); err != nil {
		log.Printf("Failed to enqueue OTP email for %s: %v", user.Email, err)
	}

	return &user, nil
}

func hashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
