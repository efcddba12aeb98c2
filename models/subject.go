package models

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Notes   []Note `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"notes,omitempty"`
	Chats   []Chat `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"chats,omitempty"`
	Quizzes []Quiz `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"quizzes,omitempty"`
}
