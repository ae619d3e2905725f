package handlers

import (
	"errors"
	"net/http"

	"gig-marketplace/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type OfferHandler struct {
	db           *gorm.DB
	offerService services.OfferService
}

func NewOfferHandler(db *gorm.DB, offerService services.OfferService) *OfferHandler {
	return &OfferHandler{db: db, offerService: offerService}
}

type CreateOfferRequest struct {
	Task        string  `json:"task" binding:"required"`
	OfferAmount float64 `json:"offerAmount" binding:"required"`
	Message     string  `json:"message"`
}

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request data", "details": err.Error()})
		return
	}

	taskID, err := uuid.FromString(req.Task)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid task"})
		return
	}

	offer, err := h.offerService.CreateOffer(h.db, userID, taskID, req.OfferAmount, req.Message)
	if err != nil {
		handleOfferError(c, err)
		return
	}

	c.JSON(http.StatusCreated, offer)
}

func (h *OfferHandler) GetOffersForTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "taskId")
	if !ok {
		return
	}

	offers, err := h.offerService.GetOffersForTask(h.db, taskID)
	if err != nil {
		handleOfferError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) GetMyOffers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	offers, err := h.offerService.GetMyOffers(h.db, userID)
	if err != nil {
		handleOfferError(c, err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

func (h *OfferHandler) GetOfferByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	offerID, ok := pathUUID(c, "offerId")
	if !ok {
		return
	}

	offer, err := h.offerService.GetOfferByID(h.db, offerID, userID)
	if err != nil {
		handleOfferError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	offerID, ok := pathUUID(c, "offerId")
	if !ok {
		return
	}

	task, err := h.offerService.AcceptOffer(h.db, offerID, userID)
	if err != nil {
		handleOfferError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Offer accepted successfully and task assigned.",
		"task":    task,
	})
}

func handleOfferError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOfferNotFound), errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrNotTaskOwner), errors.Is(err, services.ErrNotOfferBidder):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrSelfOffer),
		errors.Is(err, services.ErrDuplicateOffer),
		errors.Is(err, services.ErrTaskNotOpen):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to process offer request"})
	}
}
