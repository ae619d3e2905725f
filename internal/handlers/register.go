package handlers

import (
	"errors"
	"log"
	"net/http"

	"gig-marketplace/backend/internal/config"
	"gig-marketplace/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterHandler struct {
	db              *gorm.DB
	registerService services.RegisterService
	uploadConfig    config.UploadConfig
}

func NewRegisterHandler(db *gorm.DB, registerService services.RegisterService, uploadConfig config.UploadConfig) *RegisterHandler {
	return &RegisterHandler{db: db, registerService: registerService, uploadConfig: uploadConfig}
}

// Registration accepts a multipart form so the avatar can ride along with
// the account fields.
func (h *RegisterHandler) Registration(c *gin.Context) {
	var req services.RegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	avatarPath, err := saveAvatar(c, h.uploadConfig)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	req.Avatar = avatarPath

	user, err := h.registerService.RegisterUser(h.db, req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		log.Printf("Registration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered. OTP sent to email.",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}
