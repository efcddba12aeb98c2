package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studymate/models"
	"studymate/services"
)

type ChatInput struct {
	SubjectID string `json:"subjectId"`
	Message   string `json:"message"`
}

const transcriptLimit = 50

// SendChatMessage handles POST /chat: one tutor exchange for a subject.
func SendChatMessage(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input ChatInput
		if err := c.ShouldBindJSON(&input); err != nil || input.SubjectID == "" || input.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subjectId or message"})
			return
		}

		subjectID, err := uuid.Parse(input.SubjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subjectId"})
			return
		}

		reply, err := svc.Send(c.Request.Context(), userID, subjectID, input.Message)
		if err != nil {
			log.Printf("chat request failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": reply})
	}
}

// GetChatTranscript handles GET /api/subjects/:id/chat.
func GetChatTranscript(svc *services.ChatService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		subjectID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject id"})
			return
		}

		msgs, err := svc.Transcript(subjectID, userID, transcriptLimit)
		if err != nil {
			log.Printf("transcript load failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load chat"})
			return
		}
		if msgs == nil {
			msgs = []models.ChatMessage{}
		}

		c.JSON(http.StatusOK, gin.H{"messages": msgs})
	}
}
