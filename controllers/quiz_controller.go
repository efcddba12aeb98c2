package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studymate/models"
	"studymate/services"
)

type QuizInput struct {
	SubjectID string `json:"subjectId"`
}

// GenerateQuiz handles POST /quiz: generate and persist a ten-question quiz
// from the subject's notes. Parse and validation failures surface as a single
// generic message; which field failed stays server-side.
func GenerateQuiz(svc *services.QuizService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		var input QuizInput
		if err := c.ShouldBindJSON(&input); err != nil || input.SubjectID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing subjectId"})
			return
		}

		subjectID, err := uuid.Parse(input.SubjectID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subjectId"})
			return
		}

		quiz, err := svc.Generate(c.Request.Context(), userID, subjectID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNoNotes):
				c.JSON(http.StatusBadRequest, gin.H{"error": "No notes found. Please create some notes first."})
			case errors.Is(err, services.ErrInvalidQuiz):
				log.Printf("quiz validation failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate valid quiz. Please try again."})
			default:
				log.Printf("quiz request failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"quizId":    quiz.ID,
			"questions": quiz.Questions.Data(),
		})
	}
}

// GET /api/subjects/:id/quizzes
func GetQuizzes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject id"})
		return
	}

	quizzes, err := getStore(c).ListQuizzes(subjectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list quizzes"})
		return
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

// GET /api/quizzes/:id
func GetQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
		return
	}

	quiz, found, err := getStore(c).GetQuiz(quizID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load quiz"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz": quiz})
}
