package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studymate/models"
)

// GormStore implements Store over a GORM database handle.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateUser(user *models.User) error {
	return s.db.Create(user).Error
}

func (s *GormStore) GetUserByEmail(email string) (models.User, bool, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}

func (s *GormStore) GetUserByID(id uuid.UUID) (models.User, bool, error) {
	var user models.User
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	return user, true, nil
}

func (s *GormStore) CreateSubject(subject *models.Subject) error {
	return s.db.Create(subject).Error
}

func (s *GormStore) ListSubjects(userID uuid.UUID) ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subjects).Error
	return subjects, err
}

func (s *GormStore) GetSubject(id, userID uuid.UUID) (models.Subject, bool, error) {
	var subject models.Subject
	err := s.db.First(&subject, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Subject{}, false, nil
	}
	if err != nil {
		return models.Subject{}, false, err
	}
	return subject, true, nil
}

func (s *GormStore) DeleteSubject(id, userID uuid.UUID) error {
	return s.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Subject{}).Error
}

func (s *GormStore) CreateNote(note *models.Note) error {
	return s.db.Create(note).Error
}

func (s *GormStore) ListNotes(subjectID, userID uuid.UUID) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *GormStore) LatestNotes(subjectID, userID uuid.UUID, limit int) ([]models.Note, error) {
	var notes []models.Note
	err := s.db.
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notes).Error
	return notes, err
}

func (s *GormStore) DeleteNote(id, userID uuid.UUID) error {
	return s.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Note{}).Error
}

func (s *GormStore) FindChat(subjectID, userID uuid.UUID) (models.Chat, bool, error) {
	var chat models.Chat
	err := s.db.
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Order("created_at ASC").
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Chat{}, false, nil
	}
	if err != nil {
		return models.Chat{}, false, err
	}
	return chat, true, nil
}

func (s *GormStore) CreateChat(chat *models.Chat) error {
	return s.db.Create(chat).Error
}

func (s *GormStore) AppendMessage(msg *models.ChatMessage) error {
	return s.db.Create(msg).Error
}

func (s *GormStore) LatestMessages(chatID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := s.db.
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// Query is newest-first; callers want chronological order.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *GormStore) CreateQuiz(quiz *models.Quiz) error {
	return s.db.Create(quiz).Error
}

func (s *GormStore) ListQuizzes(subjectID, userID uuid.UUID) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.
		Where("subject_id = ? AND user_id = ?", subjectID, userID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (s *GormStore) GetQuiz(id, userID uuid.UUID) (models.Quiz, bool, error) {
	var quiz models.Quiz
	err := s.db.First(&quiz, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Quiz{}, false, nil
	}
	if err != nil {
		return models.Quiz{}, false, err
	}
	return quiz, true, nil
}
