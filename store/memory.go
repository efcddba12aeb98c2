package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"studymate/models"
)

// MemoryStore is an in-memory Store used by tests and local runs without a
// database. Slices are append-only, so insertion order stands in for the
// created_at ordering Postgres would give (timestamps within one process can
// collide at clock resolution).
type MemoryStore struct {
	mu       sync.Mutex
	users    []models.User
	subjects []models.Subject
	notes    []models.Note
	chats    []models.Chat
	messages []models.ChatMessage
	quizzes  []models.Quiz
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&user.ID, &user.CreatedAt)
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) GetUserByEmail(email string) (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (s *MemoryStore) GetUserByID(id uuid.UUID) (models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (s *MemoryStore) CreateSubject(subject *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&subject.ID, &subject.CreatedAt)
	s.subjects = append(s.subjects, *subject)
	return nil
}

func (s *MemoryStore) ListSubjects(userID uuid.UUID) ([]models.Subject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Subject
	for i := len(s.subjects) - 1; i >= 0; i-- {
		if s.subjects[i].UserID == userID {
			out = append(out, s.subjects[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) GetSubject(id, userID uuid.UUID) (models.Subject, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subjects {
		if sub.ID == id && sub.UserID == userID {
			return sub, true, nil
		}
	}
	return models.Subject{}, false, nil
}

func (s *MemoryStore) DeleteSubject(id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.subjects[:0]
	for _, sub := range s.subjects {
		if !(sub.ID == id && sub.UserID == userID) {
			kept = append(kept, sub)
		}
	}
	s.subjects = kept
	return nil
}

func (s *MemoryStore) CreateNote(note *models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&note.ID, &note.CreatedAt)
	s.notes = append(s.notes, *note)
	return nil
}

func (s *MemoryStore) ListNotes(subjectID, userID uuid.UUID) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Note
	for i := len(s.notes) - 1; i >= 0; i-- {
		if s.notes[i].SubjectID == subjectID && s.notes[i].UserID == userID {
			out = append(out, s.notes[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) LatestNotes(subjectID, userID uuid.UUID, limit int) ([]models.Note, error) {
	notes, err := s.ListNotes(subjectID, userID)
	if err != nil {
		return nil, err
	}
	if len(notes) > limit {
		notes = notes[:limit]
	}
	return notes, nil
}

func (s *MemoryStore) DeleteNote(id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notes[:0]
	for _, n := range s.notes {
		if !(n.ID == id && n.UserID == userID) {
			kept = append(kept, n)
		}
	}
	s.notes = kept
	return nil
}

func (s *MemoryStore) FindChat(subjectID, userID uuid.UUID) (models.Chat, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chats {
		if c.SubjectID == subjectID && c.UserID == userID {
			return c, true, nil
		}
	}
	return models.Chat{}, false, nil
}

func (s *MemoryStore) CreateChat(chat *models.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&chat.ID, &chat.CreatedAt)
	s.chats = append(s.chats, *chat)
	return nil
}

func (s *MemoryStore) AppendMessage(msg *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&msg.ID, &msg.CreatedAt)
	s.messages = append(s.messages, *msg)
	return nil
}

func (s *MemoryStore) LatestMessages(chatID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []models.ChatMessage
	for _, m := range s.messages {
		if m.ChatID == chatID {
			all = append(all, m)
		}
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (s *MemoryStore) CreateQuiz(quiz *models.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp(&quiz.ID, &quiz.CreatedAt)
	s.quizzes = append(s.quizzes, *quiz)
	return nil
}

func (s *MemoryStore) ListQuizzes(subjectID, userID uuid.UUID) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Quiz
	for i := len(s.quizzes) - 1; i >= 0; i-- {
		if s.quizzes[i].SubjectID == subjectID && s.quizzes[i].UserID == userID {
			out = append(out, s.quizzes[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) GetQuiz(id, userID uuid.UUID) (models.Quiz, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quizzes {
		if q.ID == id && q.UserID == userID {
			return q, true, nil
		}
	}
	return models.Quiz{}, false, nil
}

// ChatCount reports how many chats exist for a subject/owner pair. Only the
// duplicate-creation test needs it, so it is not part of the Store interface.
func (s *MemoryStore) ChatCount(subjectID, userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.chats {
		if c.SubjectID == subjectID && c.UserID == userID {
			n++
		}
	}
	return n
}

func stamp(id *uuid.UUID, createdAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}
