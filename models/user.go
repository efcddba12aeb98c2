package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName  string    `gorm:"size:150;not null" json:"full_name"`
	Email     string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text" json:"-"` // empty for Google sign-in accounts
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Subjects []Subject `gorm:"foreignKey:UserID" json:"subjects,omitempty"`
}
