package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"gig-marketplace/backend/internal/models"

	"gorm.io/gorm"
)

// OTPMailer enqueues a one-time code for delivery. Implemented by
// worker.MailQueue; delivery is best-effort and never fails the request.
type OTPMailer interface {
	EnqueueOTP(email, code, purpose string) error
}

// GenerateOTP returns a 6-digit numeric code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

type OTPService interface {
	VerifyOTP(db *gorm.DB, email, code string) error
	ResendOTP(db *gorm.DB, email, purpose string) error
	ResetPassword(db *gorm.DB, email, code, newPassword string) error
}

type OTPServiceImpl struct {
	mailer     OTPMailer
	ttl        time.Duration
	bcryptCost int
}

func NewOTPService(mailer OTPMailer, ttl time.Duration, bcryptCost int) *OTPServiceImpl {
	return &OTPServiceImpl{mailer: mailer, ttl: ttl, bcryptCost: bcryptCost}
}

// VerifyOTP marks the account verified and clears the challenge.
func (s *OTPServiceImpl) VerifyOTP(db *gorm.DB, email, code string) error {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.OTPCode == "" || user.OTPCode != code || user.OTPPurpose != models.OTPPurposeVerification {
		return ErrInvalidOTP
	}
	if user.OTPExpiresAt == nil || user.OTPExpiresAt.Before(time.Now()) {
		return ErrOTPExpired
	}

	user.IsVerified = true
	user.ClearOTP()
	return db.Save(&user).Error
}

// ResendOTP regenerates the challenge. The verification purpose refuses
// already-verified accounts; password-reset works regardless.
func (s *OTPServiceImpl) ResendOTP(db *gorm.DB, email, purpose string) error {
	if purpose == "" {
		purpose = models.OTPPurposeVerification
	}
	if purpose != models.OTPPurposeVerification && purpose != models.OTPPurposePasswordReset {
		return ErrInvalidOTP
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if purpose == models.OTPPurposeVerification && user.IsVerified {
		return ErrAlreadyVerified
	}

	code, err := GenerateOTP()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.ttl)
	user.OTPCode = code
	user.OTPExpiresAt = &expiresAt
	user.OTPPurpose = purpose

	if err := db.Save(&user).Error; err != nil {
		return err
	}

	if err := s.mailer.EnqueueOTP(user.Email, code, purpose); err != nil {
		log.Printf("Failed to enqueue OTP email for %s: %v", user.Email, err)
	}
	return nil
}

// ResetPassword completes the password-reset flow started by ResendOTP.
func (s *OTPServiceImpl) ResetPassword(db *gorm.DB, email, code, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.OTPCode == "" || user.OTPExpiresAt == nil {
		return ErrNoOTPChallenge
	}
	if user.OTPCode != code || user.OTPPurpose != models.OTPPurposePasswordReset {
		return ErrInvalidOTP
	}
	if user.OTPExpiresAt.Before(time.Now()) {
		return ErrOTPExpired
	}

	hashed, err := hashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ClearOTP()
	return db.Save(&user).Error
}
