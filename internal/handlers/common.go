package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// currentUserID pulls the authenticated caller's id set by the authz
// middleware. Aborts with 401 when absent or malformed.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return uuid.Nil, false
	}
	userIDStr, ok := userIDInterface.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Invalid user ID format"})
		return uuid.Nil, false
	}
	userID, err := uuid.FromString(userIDStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a path parameter as a UUID, answering 400 when it is not.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
