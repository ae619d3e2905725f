package services

import (
	"errors"
	"fmt"
	"log"

	"gig-marketplace/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Notifier is the fan-out side of the dispatcher, called by the task and
// offer services after state changes. Delivery is best-effort: failures are
// logged and never surface to the triggering request.
type Notifier interface {
	NotifyNewOffer(db *gorm.DB, offer *models.Offer)
	NotifyOfferAccepted(db *gorm.DB, offer *models.Offer)
	NotifyTaskEdited(db *gorm.DB, taskID uuid.UUID)
	NotifyTaskCanceled(db *gorm.DB, taskID uuid.UUID)
}

type NotificationService interface {
	Notifier
	CreateNotification(db *gorm.DB, notification *models.Notification) error
	GetUserNotifications(db *gorm.DB, userID uuid.UUID) ([]models.Notification, error)
	MarkAsRead(db *gorm.DB, notificationID uuid.UUID) (*models.Notification, error)
}

type NotificationServiceImpl struct{}

func NewNotificationService() *NotificationServiceImpl {
	return &NotificationServiceImpl{}
}

func (s *NotificationServiceImpl) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.Must(uuid.NewV4())
	}
	if notification.Type == "" {
		notification.Type = models.NotificationTypeGeneric
	}
	return db.Create(notification).Error
}

func (s *NotificationServiceImpl) GetUserNotifications(db *gorm.DB, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&notifications).Error
	return notifications, err
}

func (s *NotificationServiceImpl) MarkAsRead(db *gorm.DB, notificationID uuid.UUID) (*models.Notification, error) {
	var notification models.Notification
	if err := db.First(&notification, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	notification.Read = true
	if err := db.Save(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// NotifyNewOffer tells the poster a bid arrived on their task.
func (s *NotificationServiceImpl) NotifyNewOffer(db *gorm.DB, offer *models.Offer) {
	var task models.Task
	if err := db.First(&task, "id = ?", offer.TaskID).Error; err != nil {
		log.Printf("Error notifying new offer: %v", err)
		return
	}

	n := models.Notification{
		ID:      uuid.Must(uuid.NewV4()),
		UserID:  task.CreatedByID,
		Message: fmt.Sprintf("New offer received on your task %q.", task.Title),
		Type:    models.NotificationTypeNewOffer,
		Link:    fmt.Sprintf("/tasks/%s", task.ID),
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("Error notifying new offer: %v", err)
	}
}

// NotifyOfferAccepted tells the bidder their offer won.
func (s *NotificationServiceImpl) NotifyOfferAccepted(db *gorm.DB, offer *models.Offer) {
	var task models.Task
	if err := db.First(&task, "id = ?", offer.TaskID).Error; err != nil {
		log.Printf("Error notifying offer acceptance: %v", err)
		return
	}

	n := models.Notification{
		ID:      uuid.Must(uuid.NewV4()),
		UserID:  offer.UserID,
		Message: fmt.Sprintf("Your offer for task %q has been accepted.", task.Title),
		Type:    models.NotificationTypeOfferAccepted,
		Link:    fmt.Sprintf("/my-offers/%s", offer.ID),
	}
	if err := db.Create(&n).Error; err != nil {
		log.Printf("Error notifying offer acceptance: %v", err)
	}
}

// NotifyTaskEdited fans out one notification per offerer on the task.
func (s *NotificationServiceImpl) NotifyTaskEdited(db *gorm.DB, taskID uuid.UUID) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		log.Printf("Error notifying task edit: %v", err)
		return
	}

	var offers []models.Offer
	if err := db.Where("task_id = ?", taskID).Find(&offers).Error; err != nil {
		log.Printf("Error notifying task edit: %v", err)
		return
	}

	for _, offer := range offers {
		n := models.Notification{
			ID:      uuid.Must(uuid.NewV4()),
			UserID:  offer.UserID,
			Message: fmt.Sprintf("Task %q has been updated by the poster.", task.Title),
			Type:    models.NotificationTypeTaskEdited,
			Link:    fmt.Sprintf("/my-offers/%s", offer.ID),
		}
		if err := db.Create(&n).Error; err != nil {
			log.Printf("Error notifying task edit: %v", err)
		}
	}
}

// NotifyTaskCanceled fans out per offerer, with a distinguishing message for
// the bidder whose offer had been accepted.
func (s *NotificationServiceImpl) NotifyTaskCanceled(db *gorm.DB, taskID uuid.UUID) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		log.Printf("Error notifying task cancellation: %v", err)
		return
	}

	var offers []models.Offer
	if err := db.Where("task_id = ?", taskID).Find(&offers).Error; err != nil {
		log.Printf("Error notifying task cancellation: %v", err)
		return
	}

	for _, offer := range offers {
		message := fmt.Sprintf("Task %q has been cancelled by the poster.", task.Title)
		if offer.Status == models.OfferStatusAccepted {
			message = fmt.Sprintf("The task you accepted %q was cancelled by the poster.", task.Title)
		}

		n := models.Notification{
			ID:      uuid.Must(uuid.NewV4()),
			UserID:  offer.UserID,
			Message: message,
			Type:    models.NotificationTypeTaskCancelled,
			Link:    fmt.Sprintf("/my-offers/%s", offer.ID),
		}
		if err := db.Create(&n).Error; err != nil {
			log.Printf("Error notifying task cancellation: %v", err)
		}
	}
}
