package services

import "errors"

// Sentinel errors translated to HTTP statuses by the handlers. The messages
// double as the user-visible text.
var (
	ErrEmailTaken         = errors.New("Email already in use")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrNotVerified        = errors.New("Please verify your email first")
	ErrUserNotFound       = errors.New("User not found")

	ErrInvalidOTP      = errors.New("Invalid OTP")
	ErrOTPExpired      = errors.New("OTP has expired")
	ErrNoOTPChallenge  = errors.New("No OTP found. Request a new one first.")
	ErrAlreadyVerified = errors.New("Email already verified")
	ErrNoPendingEmail  = errors.New("No pending email change found")
	ErrInvalidEmail    = errors.New("Please provide a valid email")

	ErrWrongPassword    = errors.New("Current password is incorrect")
	ErrPasswordTooShort = errors.New("New password must be at least 6 characters")

	ErrTaskNotFound = errors.New("Task not found")
	ErrNotTaskOwner = errors.New("Unauthorized: not the task owner")
	ErrTaskGone     = errors.New("This task has been cancelled")
	ErrTaskNotOpen  = errors.New("This task has already been assigned to another tasker.")

	ErrOfferNotFound  = errors.New("Offer not found")
	ErrSelfOffer      = errors.New("You cannot make an offer on your own task.")
	ErrDuplicateOffer = errors.New("You have already made an offer for this task.")
	ErrNotOfferBidder = errors.New("Unauthorized: not the offer owner")

	ErrQuestionNotFound     = errors.New("Question not found")
	ErrNotificationNotFound = errors.New("Notification not found")
)
