package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gig-marketplace/backend/internal/handlers"
	"gig-marketplace/backend/internal/models"
	"gig-marketplace/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type MockOfferService struct {
	err    error
	offers []models.Offer
}

func (m *MockOfferService) CreateOffer(db *gorm.DB, bidderID, taskID uuid.UUID, amount float64, message string) (*models.Offer, error) {
	if m.err != nil {
		return nil, m.err
	}
	offer := models.Offer{
		ID:      uuid.Must(uuid.NewV4()),
		TaskID:  taskID,
		UserID:  bidderID,
		Amount:  amount,
		Message: message,
		Status:  models.OfferStatusPending,
	}
	m.offers = append(m.offers, offer)
	return &offer, nil
}

func (m *MockOfferService) GetOffersForTask(db *gorm.DB, taskID uuid.UUID) ([]models.Offer, error) {
	return m.offers, m.err
}

func (m *MockOfferService) GetMyOffers(db *gorm.DB, userID uuid.UUID) ([]models.Offer, error) {
	return m.offers, m.err
}

func (m *MockOfferService) GetOfferByID(db *gorm.DB, offerID, callerID uuid.UUID) (*models.Offer, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Offer{ID: offerID, UserID: callerID, Status: models.OfferStatusPending}, nil
}

func (m *MockOfferService) AcceptOffer(db *gorm.DB, offerID, callerID uuid.UUID) (*models.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Task{ID: uuid.Must(uuid.NewV4()), Status: models.TaskStatusAssigned}, nil
}

func setupOfferHandler() (*handlers.OfferHandler, *MockOfferService, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	mockService := &MockOfferService{}
	handler := handlers.NewOfferHandler(nil, mockService)
	router := gin.New()

	router.Use(func(c *gin.Context) {
		c.Set("user_id", uuid.Must(uuid.NewV4()).String())
		c.Next()
	})

	return handler, mockService, router
}

func TestCreateOffer(t *testing.T) {
	handler, _, router := setupOfferHandler()

	router.POST("/offers", handler.CreateOffer)

	bodyJSON, _ := json.Marshal(map[string]interface{}{
		"task":        uuid.Must(uuid.NewV4()).String(),
		"offerAmount": 55.5,
		"message":     "I can do this on Friday",
	})
	req, _ := http.NewRequest("POST", "/offers", bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status %d, got %d", http.StatusCreated, w.Code)
	}

	var offer models.Offer
	if err := json.Unmarshal(w.Body.Bytes(), &offer); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if offer.Status != models.OfferStatusPending {
		t.Errorf("Expected pending offer, got %s", offer.Status)
	}
}

func TestCreateOfferDuplicate(t *testing.T) {
	handler, mockService, router := setupOfferHandler()

	router.POST("/offers", handler.CreateOffer)
	mockService.err = services.ErrDuplicateOffer

	bodyJSON, _ := json.Marshal(map[string]interface{}{
		"task":        uuid.Must(uuid.NewV4()).String(),
		"offerAmount": 55.5,
	})
	req, _ := http.NewRequest("POST", "/offers", bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCreateOfferMissingAmount(t *testing.T) {
	handler, _, router := setupOfferHandler()

	router.POST("/offers", handler.CreateOffer)

	bodyJSON, _ := json.Marshal(map[string]interface{}{
		"task": uuid.Must(uuid.NewV4()).String(),
	})
	req, _ := http.NewRequest("POST", "/offers", bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestGetOfferByIDForbidden(t *testing.T) {
	handler, mockService, router := setupOfferHandler()

	router.GET("/offers/:offerId", handler.GetOfferByID)
	mockService.err = services.ErrNotOfferBidder

	req, _ := http.NewRequest("GET", "/offers/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestAcceptOffer(t *testing.T) {
	handler, _, router := setupOfferHandler()

	router.PUT("/offers/:offerId/accept", handler.AcceptOffer)

	req, _ := http.NewRequest("PUT", "/offers/"+uuid.Must(uuid.NewV4()).String()+"/accept", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if response["message"] != "Offer accepted successfully and task assigned." {
		t.Errorf("Unexpected message: %v", response["message"])
	}
	if response["task"] == nil {
		t.Error("Expected the assigned task in the response")
	}
}

func TestAcceptOfferRace(t *testing.T) {
	handler, mockService, router := setupOfferHandler()

	router.PUT("/offers/:offerId/accept", handler.AcceptOffer)
	mockService.err = services.ErrTaskNotOpen

	req, _ := http.NewRequest("PUT", "/offers/"+uuid.Must(uuid.NewV4()).String()+"/accept", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Errorf("Failed to unmarshal response: %v", err)
	}
	if response["message"] != services.ErrTaskNotOpen.Error() {
		t.Errorf("Unexpected message: %v", response["message"])
	}
}
