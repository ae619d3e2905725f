package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"gig-marketplace/backend/internal/config"
	"gig-marketplace/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct {
	db           *gorm.DB
	userService  services.UserService
	uploadConfig config.UploadConfig
}

func NewUserHandler(db *gorm.DB, userService services.UserService, uploadConfig config.UploadConfig) *UserHandler {
	return &UserHandler{db: db, userService: userService, uploadConfig: uploadConfig}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(h.db, userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile accepts a multipart form; every field is optional and the
// avatar file replaces the stored one when present.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	update := services.ProfileUpdate{
		Name:     c.PostForm("name"),
		Location: c.PostForm("location"),
		Bio:      c.PostForm("bio"),
	}

	latStr, lngStr := c.PostForm("latitude"), c.PostForm("longitude")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid coordinates"})
			return
		}
		update.Latitude = &lat
		update.Longitude = &lng
	}

	avatarPath, err := saveAvatar(c, h.uploadConfig)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	update.Avatar = avatarPath

	if err := h.userService.UpdateProfile(h.db, userID, update); err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

type EmailChangeRequest struct {
	NewEmail string `json:"newEmail" binding:"required"`
}

func (h *UserHandler) RequestEmailChange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req EmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide a valid email"})
		return
	}

	if err := h.userService.RequestEmailChange(h.db, userID, req.NewEmail); err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to new email. Please verify to confirm email change."})
}

type ConfirmEmailChangeRequest struct {
	OTP string `json:"otp" binding:"required"`
}

func (h *UserHandler) ConfirmEmailChange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ConfirmEmailChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	if err := h.userService.ConfirmEmailChange(h.db, userID, req.OTP); err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email updated successfully"})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	if err := h.userService.ChangePassword(h.db, userID, req.CurrentPassword, req.NewPassword); err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *UserHandler) GetPublicProfile(c *gin.Context) {
	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	profile, err := h.userService.GetPublicProfile(h.db, targetID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrNoOTPChallenge),
		errors.Is(err, services.ErrNoPendingEmail),
		errors.Is(err, services.ErrWrongPassword),
		errors.Is(err, services.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process user request"})
	}
}
