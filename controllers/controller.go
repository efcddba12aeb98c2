package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studymate/store"
)

func getStore(c *gin.Context) store.Store {
	return c.MustGet("store").(store.Store)
}

// currentUserID reads the verified user id set by the auth middleware. A
// missing or malformed id means the middleware did not run; treat it as
// unauthorized rather than a server fault.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr := c.GetString("user_id")
	if userIDStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
