package handlers

import (
	"errors"
	"net/http"

	"gig-marketplace/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VerificationHandler struct {
	db         *gorm.DB
	otpService services.OTPService
}

func NewVerificationHandler(db *gorm.DB, otpService services.OTPService) *VerificationHandler {
	return &VerificationHandler{db: db, otpService: otpService}
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type ResendOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Purpose string `json:"purpose"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *VerificationHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format", "details": err.Error()})
		return
	}

	if err := h.otpService.VerifyOTP(h.db, req.Email, req.OTP); err != nil {
		handleOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully"})
}

func (h *VerificationHandler) ResendOTP(c *gin.Context) {
	var req ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format", "details": err.Error()})
		return
	}

	if err := h.otpService.ResendOTP(h.db, req.Email, req.Purpose); err != nil {
		handleOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP resent to your email"})
}

func (h *VerificationHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format", "details": err.Error()})
		return
	}

	if err := h.otpService.ResetPassword(h.db, req.Email, req.OTP, req.NewPassword); err != nil {
		handleOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func handleOTPError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrNoOTPChallenge),
		errors.Is(err, services.ErrAlreadyVerified),
		errors.Is(err, services.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
