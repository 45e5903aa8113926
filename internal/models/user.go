package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User mirrors an identity-provider subject. Rows are created lazily by the
// auth sync endpoint on a user's first authenticated request; the ID is the
// provider's subject claim, never generated locally.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Name      string         `gorm:"size:255" json:"name,omitempty"`
	AvatarURL string         `gorm:"size:255" json:"avatar_url,omitempty"`
}
