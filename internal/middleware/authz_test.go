package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gig-marketplace/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func setupAuthzRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.AuthzMiddleware(testSecret))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetString("user_id"),
			"user_role": c.GetString("user_role"),
		})
	})
	return router
}

func doProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthzValidToken(t *testing.T) {
	router := setupAuthzRouter()
	userID := uuid.Must(uuid.NewV4()).String()

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":   userID,
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doProtected(router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), userID) {
		t.Errorf("Expected user id %s in response, got %s", userID, w.Body.String())
	}
}

func TestAuthzMissingHeader(t *testing.T) {
	router := setupAuthzRouter()

	w := doProtected(router, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzNotBearer(t *testing.T) {
	router := setupAuthzRouter()

	w := doProtected(router, "Basic abcdef")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzWrongSecret(t *testing.T) {
	router := setupAuthzRouter()

	token := signToken(t, "other-secret", jwt.MapClaims{
		"id":  uuid.Must(uuid.NewV4()).String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doProtected(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzExpiredToken(t *testing.T) {
	router := setupAuthzRouter()

	token := signToken(t, testSecret, jwt.MapClaims{
		"id":  uuid.Must(uuid.NewV4()).String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := doProtected(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthzMissingIDClaim(t *testing.T) {
	router := setupAuthzRouter()

	token := signToken(t, testSecret, jwt.MapClaims{
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	w := doProtected(router, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}
