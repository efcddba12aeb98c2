package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"studymate/models"
	"studymate/store"
)

const (
	quizNoteLimit     = 20
	quizQuestionCount = 10

	quizTemperature = 0.7
	quizMaxTokens   = 3000
)

const quizPrompt = `You are a quiz generator. Generate exactly 10 multiple-choice questions based on the provided study notes.

Each question should have:
- A clear question (q)
- Exactly 4 answer options (options array)
- The correct answer index (answerIndex: 0-3)
- A brief explanation (explanation)

Format your response as a valid JSON array of questions. Each question should follow this structure:
{
  "q": "Question text?",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "answerIndex": 0,
  "explanation": "Brief explanation of why this is correct"
}

Return ONLY the JSON array, no other text.`

// QuizService generates a ten-question multiple-choice quiz grounded in a
// subject's notes and persists it as an immutable record.
type QuizService struct {
	store     store.Store
	generator TextGenerator
}

func NewQuizService(st store.Store, gen TextGenerator) *QuizService {
	return &QuizService{store: st, generator: gen}
}

// Generate builds the quiz or fails explicitly: a subject with zero notes is
// ErrNoNotes, and any parse or shape problem in the model output is
// ErrInvalidQuiz. A partially valid quiz is never persisted.
func (s *QuizService) Generate(ctx context.Context, userID, subjectID uuid.UUID) (models.Quiz, error) {
	notes, err := s.store.LatestNotes(subjectID, userID, quizNoteLimit)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("load notes: %w", err)
	}
	if len(notes) == 0 {
		return models.Quiz{}, ErrNoNotes
	}

	raw, err := s.generator.GenerateText(ctx, CompletionRequest{
		System:      quizPrompt,
		User:        "Generate a quiz based on these notes:\n\n" + RenderNotes(notes, quizNoteSeparator),
		Temperature: quizTemperature,
		MaxTokens:   quizMaxTokens,
	})
	if err != nil {
		return models.Quiz{}, fmt.Errorf("completion: %w", err)
	}

	questions, err := ParseQuizResponse(raw)
	if err != nil {
		return models.Quiz{}, err
	}

	quiz := models.Quiz{
		UserID:    userID,
		SubjectID: subjectID,
		Title:     fmt.Sprintf("Quiz - %s", time.Now().Format("1/2/2006")),
		Questions: datatypes.NewJSONType(questions),
	}
	if err := s.store.CreateQuiz(&quiz); err != nil {
		return models.Quiz{}, fmt.Errorf("persist quiz: %w", err)
	}
	return quiz, nil
}

// ParseQuizResponse extracts and validates the question array from a raw
// completion. The text may wrap the JSON in prose or code fences, so the span
// from the first '[' to the last ']' is parsed first; if no such span exists
// the raw text is parsed directly. Validation is all-or-nothing: after
// truncating to ten elements, every question must have non-empty text, exactly
// four options, an answer index in [0,3], and a non-empty explanation.
func ParseQuizResponse(raw string) ([]models.QuizQuestion, error) {
	payload := raw
	if start := strings.Index(raw, "["); start >= 0 {
		if end := strings.LastIndex(raw, "]"); end > start {
			payload = raw[start : end+1]
		}
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuiz, err)
	}

	if len(questions) > quizQuestionCount {
		questions = questions[:quizQuestionCount]
	}
	if len(questions) != quizQuestionCount {
		return nil, fmt.Errorf("%w: got %d questions", ErrInvalidQuiz, len(questions))
	}
	for i, q := range questions {
		if q.Q == "" || len(q.Options) != 4 || q.AnswerIndex < 0 || q.AnswerIndex > 3 || q.Explanation == "" {
			return nil, fmt.Errorf("%w: malformed question at index %d", ErrInvalidQuiz, i)
		}
	}
	return questions, nil
}
