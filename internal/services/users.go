package services

import (
	"errors"
	"log"
	"regexp"
	"time"

	"gig-marketplace/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type ProfileUpdate struct {
	Name      string
	Location  string
	Latitude  *float64
	Longitude *float64
	Avatar    string
	Bio       string
}

type PublicProfile struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

type UserService interface {
	GetProfile(db *gorm.DB, userID uuid.UUID) (*models.User, error)
	GetPublicProfile(db *gorm.DB, userID uuid.UUID) (*PublicProfile, error)
	UpdateProfile(db *gorm.DB, userID uuid.UUID, update ProfileUpdate) error
	RequestEmailChange(db *gorm.DB, userID uuid.UUID, newEmail string) error
	ConfirmEmailChange(db *gorm.DB, userID uuid.UUID, code string) error
	ChangePassword(db *gorm.DB, userID uuid.UUID, currentPassword, newPassword string) error
}

type UserServiceImpl struct {
	mailer     OTPMailer
	otpTTL     time.Duration
	bcryptCost int
}

func NewUserService(mailer OTPMailer, otpTTL time.Duration, bcryptCost int) *UserServiceImpl {
	return &UserServiceImpl{mailer: mailer, otpTTL: otpTTL, bcryptCost: bcryptCost}
}

func (s *UserServiceImpl) GetProfile(db *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserServiceImpl) GetPublicProfile(db *gorm.DB, userID uuid.UUID) (*PublicProfile, error) {
	user, err := s.GetProfile(db, userID)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{
		Name:     user.Name,
		Avatar:   user.Avatar,
		Location: user.Location,
		Bio:      user.Bio,
	}, nil
}

// UpdateProfile applies only the fields present in the update. Coordinates
// move together: both or neither.
func (s *UserServiceImpl) UpdateProfile(db *gorm.DB, userID uuid.UUID, update ProfileUpdate) error {
	user, err := s.GetProfile(db, userID)
	if err != nil {
		return err
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Location != "" {
		user.Location = update.Location
	}
	if update.Latitude != nil && update.Longitude != nil {
		user.Latitude = *update.Latitude
		user.Longitude = *update.Longitude
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}
	if update.Bio != "" {
		user.Bio = update.Bio
	}

	return db.Save(user).Error
}

// RequestEmailChange stores the pending address and sends the OTP to it, not
// to the current address.
func (s *UserServiceImpl) RequestEmailChange(db *gorm.DB, userID uuid.UUID, newEmail string) error {
	if !emailPattern.MatchString(newEmail) {
		return ErrInvalidEmail
	}

	var existing models.User
	if err := db.Where("email = ?", newEmail).First(&existing).Error; err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user, err := s.GetProfile(db, userID)
	if err != nil {
		return err
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.otpTTL)
	user.OTPCode = code
	user.OTPExpiresAt = &expiresAt
	user.OTPPurpose = models.OTPPurposeEmailChange
	user.PendingEmail = newEmail

	if err := db.Save(user).Error; err != nil {
		return err
	}

	if err := s.mailer.EnqueueOTP(newEmail, code, models.OTPPurposeEmailChange); err != nil {
		log.Printf("Failed to enqueue OTP email for %s: %v", newEmail, err)
	}
	return nil
}

func (s *UserServiceImpl) ConfirmEmailChange(db *gorm.DB, userID uuid.UUID, code string) error {
	user, err := s.GetProfile(db, userID)
	if err != nil {
		return err
	}

	if user.OTPCode == "" || user.OTPExpiresAt == nil {
		return ErrNoOTPChallenge
	}
	if user.OTPExpiresAt.Before(time.Now()) {
		return ErrOTPExpired
	}
	if user.OTPCode != code || user.OTPPurpose != models.OTPPurposeEmailChange {
		return ErrInvalidOTP
	}
	if user.PendingEmail == "" {
		return ErrNoPendingEmail
	}

	user.Email = user.PendingEmail
	user.PendingEmail = ""
	user.ClearOTP()
	return db.Save(user).Error
}

func (s *UserServiceImpl) ChangePassword(db *gorm.DB, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.GetProfile(db, userID)
	if err != nil {
		return err
	}

	if !VerifyPassword(user.Password, currentPassword) {
		return ErrWrongPassword
	}

	hashed, err := hashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.Password = hashed
	return db.Save(user).Error
}
