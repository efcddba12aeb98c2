package models

import (
	"time"

	"github.com/google/uuid"
)

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Chat is the single conversation a user holds per subject. Resolution is
// lookup-then-create without a uniqueness constraint, so two racing first
// messages can leave two rows; readers must tolerate that.
type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Messages []ChatMessage `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// ChatMessage rows are append-only; nothing edits or deletes them.
type ChatMessage struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ChatID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"chat_id"`
	Role      MessageRole `gorm:"size:20;not null" json:"role"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}
