package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studymate/models"
)

type CreateNoteInput struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// POST /api/subjects/:id/notes
func CreateNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject id"})
		return
	}

	var input CreateNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing title or content"})
		return
	}

	st := getStore(c)
	if _, found, err := st.GetSubject(subjectID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create note"})
		return
	} else if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subject not found"})
		return
	}

	note := models.Note{
		UserID:    userID,
		SubjectID: subjectID,
		Title:     input.Title,
		Content:   input.Content,
	}
	if err := st.CreateNote(&note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create note"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"note": note})
}

// GET /api/subjects/:id/notes
func GetNotes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject id"})
		return
	}

	notes, err := getStore(c).ListNotes(subjectID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list notes"})
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// DELETE /api/notes/:id
func DeleteNote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid note id"})
		return
	}

	if err := getStore(c).DeleteNote(noteID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete note"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}
