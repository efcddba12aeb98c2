package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studymate/models"
)

type CreateSubjectInput struct {
	Title string `json:"title" binding:"required"`
}

// POST /api/subjects
func CreateSubject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateSubjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing title"})
		return
	}

	subject := models.Subject{
		UserID: userID,
		Title:  input.Title,
	}
	if err := getStore(c).CreateSubject(&subject); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create subject"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subject": subject})
}

// GET /api/subjects
func GetSubjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subjects, err := getStore(c).ListSubjects(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list subjects"})
		return
	}
	if subjects == nil {
		subjects = []models.Subject{}
	}

	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}

// DELETE /api/subjects/:id
func DeleteSubject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject id"})
		return
	}

	if err := getStore(c).DeleteSubject(subjectID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete subject"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted"})
}
