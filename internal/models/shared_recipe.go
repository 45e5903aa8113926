package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SharedRecipe grants one user read, and optionally write, access to a recipe
// they do not own. At most one grant exists per (recipe, recipient) pair;
// re-sharing updates CanEdit on the existing row.
type SharedRecipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	RecipeID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shared_recipe_recipient" json:"recipe_id"`
	Recipe       *Recipe   `gorm:"foreignKey:RecipeID" json:"recipe,omitempty"`
	SharedByID   uuid.UUID `gorm:"type:uuid;not null" json:"shared_by_id"`
	SharedBy     *User     `gorm:"foreignKey:SharedByID" json:"shared_by,omitempty"`
	SharedWithID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shared_recipe_recipient" json:"shared_with_id"`
	SharedWith   *User     `gorm:"foreignKey:SharedWithID" json:"shared_with,omitempty"`
	CanEdit      bool      `gorm:"not null;default:false" json:"can_edit"`
}

func (s *SharedRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
