package store

import (
	"github.com/google/uuid"

	"studymate/models"
)

// Store defines persistence operations for users, subjects, notes, chats, and
// quizzes. Every subject/note/quiz read filters on the owning user; there is no
// integrity validation beyond those filters.
type Store interface {
	// users
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (models.User, bool, error)
	GetUserByID(id uuid.UUID) (models.User, bool, error)

	// subjects
	CreateSubject(subject *models.Subject) error
	ListSubjects(userID uuid.UUID) ([]models.Subject, error)
	GetSubject(id, userID uuid.UUID) (models.Subject, bool, error)
	DeleteSubject(id, userID uuid.UUID) error

	// notes
	CreateNote(note *models.Note) error
	ListNotes(subjectID, userID uuid.UUID) ([]models.Note, error)
	// LatestNotes returns up to limit notes for the subject/owner pair,
	// newest first.
	LatestNotes(subjectID, userID uuid.UUID, limit int) ([]models.Note, error)
	DeleteNote(id, userID uuid.UUID) error

	// chats
	FindChat(subjectID, userID uuid.UUID) (models.Chat, bool, error)
	CreateChat(chat *models.Chat) error
	AppendMessage(msg *models.ChatMessage) error
	// LatestMessages returns up to limit of the chat's most recent messages
	// in chronological order.
	LatestMessages(chatID uuid.UUID, limit int) ([]models.ChatMessage, error)

	// quizzes
	CreateQuiz(quiz *models.Quiz) error
	ListQuizzes(subjectID, userID uuid.UUID) ([]models.Quiz, error)
	GetQuiz(id, userID uuid.UUID) (models.Quiz, bool, error)
}
