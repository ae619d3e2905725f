package handlers

import (
	"errors"
	"net/http"

	"gig-marketplace/backend/internal/models"
	"gig-marketplace/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db                  *gorm.DB
	notificationService services.NotificationService
}

func NewNotificationHandler(db *gorm.DB, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{db: db, notificationService: notificationService}
}

type CreateNotificationRequest struct {
	User    string `json:"user" binding:"required"`
	Message string `json:"message" binding:"required"`
	Type    string `json:"type"`
	Link    string `json:"link"`
}

func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	userID, err := uuid.FromString(req.User)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user"})
		return
	}

	notification := models.Notification{
		UserID:  userID,
		Message: req.Message,
		Type:    req.Type,
		Link:    req.Link,
	}
	if err := h.notificationService.CreateNotification(h.db, &notification); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, notification)
}

func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	notifications, err := h.notificationService.GetUserNotifications(h.db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	notificationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.MarkAsRead(h.db, notificationID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update notification"})
		return
	}
	c.JSON(http.StatusOK, notification)
}
