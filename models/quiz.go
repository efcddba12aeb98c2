package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QuizQuestion is embedded in its quiz as JSONB and is not independently
// addressable. The json tags are the wire shape the client consumes.
type QuizQuestion struct {
	Q           string   `json:"q"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation"`
}

// Quiz is immutable once created; there is no update path.
type Quiz struct {
	ID        uuid.UUID                          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID                          `gorm:"type:uuid;not null;index" json:"user_id"`
	SubjectID uuid.UUID                          `gorm:"type:uuid;not null;index" json:"subject_id"`
	Title     string                             `gorm:"size:255;not null" json:"title"`
	Questions datatypes.JSONType[[]QuizQuestion] `gorm:"type:jsonb" json:"questions"`
	CreatedAt time.Time                          `gorm:"autoCreateTime" json:"created_at"`
}
