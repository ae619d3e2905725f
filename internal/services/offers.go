package services

import (
	"errors"

	"gig-marketplace/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type OfferService interface {
	CreateOffer(db *gorm.DB, bidderID, taskID uuid.UUID, amount float64, message string) (*models.Offer, error)
	GetOffersForTask(db *gorm.DB, taskID uuid.UUID) ([]models.Offer, error)
	GetMyOffers(db *gorm.DB, userID uuid.UUID) ([]models.Offer, error)
	GetOfferByID(db *gorm.DB, offerID, callerID uuid.UUID) (*models.Offer, error)
	AcceptOffer(db *gorm.DB, offerID, callerID uuid.UUID) (*models.Task, error)
}

type OfferServiceImpl struct {
	taskService TaskService
	notifier    Notifier
}

func NewOfferService(taskService TaskService, notifier Notifier) *OfferServiceImpl {
	return &OfferServiceImpl{taskService: taskService, notifier: notifier}
}

// CreateOffer persists a pending bid. Self-offers and second offers on the
// same task are rejected.
func (s *OfferServiceImpl) CreateOffer(db *gorm.DB, bidderID, taskID uuid.UUID, amount float64, message string) (*models.Offer, error) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if task.CreatedByID == bidderID {
		return nil, ErrSelfOffer
	}

	var existing models.Offer
	if err := db.Where("task_id = ? AND user_id = ?", taskID, bidderID).First(&existing).Error; err == nil {
		return nil, ErrDuplicateOffer
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	offer := models.Offer{
		ID:      uuid.Must(uuid.NewV4()),
		TaskID:  taskID,
		UserID:  bidderID,
		Amount:  amount,
		Message: message,
		Status:  models.OfferStatusPending,
	}
	if err := db.Create(&offer).Error; err != nil {
		return nil, err
	}

	s.notifier.NotifyNewOffer(db, &offer)

	return &offer, nil
}

func (s *OfferServiceImpl) GetOffersForTask(db *gorm.DB, taskID uuid.UUID) ([]models.Offer, error) {
	var offers []models.Offer
	err := db.Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at desc").
		Find(&offers).Error
	return offers, err
}

func (s *OfferServiceImpl) GetMyOffers(db *gorm.DB, userID uuid.UUID) ([]models.Offer, error) {
	var offers []models.Offer
	err := db.Preload("Task").Preload("Task.CreatedBy").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&offers).Error
	return offers, err
}

// GetOfferByID is restricted to the offer's own bidder.
func (s *OfferServiceImpl) GetOfferByID(db *gorm.DB, offerID, callerID uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	if err := db.Preload("Task").Preload("Task.CreatedBy").Preload("User").
		First(&offer, "id = ?", offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}

	if offer.UserID != callerID {
		return nil, ErrNotOfferBidder
	}

	return &offer, nil
}

// AcceptOffer assigns the task to the bidder and marks the offer accepted in
// one transaction. The assignment transition is conditional on the task
// still being open, so the first acceptance wins and any competing call
// fails with ErrTaskNotOpen.
func (s *OfferServiceImpl) AcceptOffer(db *gorm.DB, offerID, callerID uuid.UUID) (*models.Task, error) {
	var offer models.Offer
	if err := db.First(&offer, "id = ?", offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}

	var task models.Task
	if err := db.First(&task, "id = ?", offer.TaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if !task.IsOwner(callerID) {
		return nil, ErrNotTaskOwner
	}

	var assigned *models.Task
	err := db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		assigned, txErr = s.taskService.AssignTask(tx, task.ID, offer.UserID)
		if txErr != nil {
			return txErr
		}
		return tx.Model(&offer).Update("status", models.OfferStatusAccepted).Error
	})
	if err != nil {
		return nil, err
	}

	offer.Status = models.OfferStatusAccepted
	s.notifier.NotifyOfferAccepted(db, &offer)

	return assigned, nil
}
