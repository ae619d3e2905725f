package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// OTP challenge purposes. A challenge issued for one purpose cannot be
// consumed by another flow.
const (
	OTPPurposeVerification  = "verification"
	OTPPurposePasswordReset = "password-reset"
	OTPPurposeEmailChange   = "email-change"
)

type User struct {
	ID       uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name     string    `json:"name" gorm:"not null"`
	Email    string    `json:"email" gorm:"unique;not null"`
	Password string    `json:"-" gorm:"not null"`
	Role     string    `json:"role" gorm:"default:'user'"`

	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Avatar string `json:"avatar"`
	Bio    string `json:"bio"`

	IsVerified bool `json:"is_verified" gorm:"default:false"`

	OTPCode      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`
	OTPPurpose   string     `json:"-"`
	PendingEmail string     `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasValidOTP reports whether the stored challenge matches the given code and
// purpose and has not expired yet.
func (u *User) HasValidOTP(code, purpose string, now time.Time) bool {
	if u.OTPCode == "" || u.OTPExpiresAt == nil {
		return false
	}
	if u.OTPCode != code || u.OTPPurpose != purpose {
		return false
	}
	return u.OTPExpiresAt.After(now)
}

// ClearOTP drops the challenge after it has been consumed or superseded.
func (u *User) ClearOTP() {
	u.OTPCode = ""
	u.OTPExpiresAt = nil
	u.OTPPurpose = ""
}
