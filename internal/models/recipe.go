package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe categories, difficulties and statuses accepted by the API.
const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategoryDessert   = "dessert"
	CategorySnack     = "snack"
	CategoryBeverage  = "beverage"
	CategoryOther     = "other"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	StatusFavorite   = "favorite"
	StatusToTry      = "to_try"
	StatusMadeBefore = "made_before"
)

// Ingredient is one entry in a recipe's ordered ingredient list.
type Ingredient struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"min=0"`
	Unit   string  `json:"unit"`
	Notes  string  `json:"notes,omitempty"`
}

// IngredientList stores the ordered ingredient sequence as a JSONB column.
type IngredientList []Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the central entity. Visibility is determined solely by IsPublic
// plus explicit SharedRecipe grants; AuthorID is immutable after creation.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	Ingredients  IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Category     string           `gorm:"size:50;not null;default:'other'" json:"category"`
	Difficulty   string           `gorm:"size:20;not null;default:'medium'" json:"difficulty"`
	PrepTime     int              `gorm:"not null;default:0" json:"prep_time"`
	CookTime     int              `gorm:"not null;default:0" json:"cook_time"`
	Servings     int              `gorm:"not null;default:4" json:"servings"`
	ImageURL     string           `gorm:"size:255" json:"image_url,omitempty"`
	Status       string           `gorm:"size:20;not null;default:'to_try'" json:"status"`
	IsPublic     bool             `gorm:"not null;default:false" json:"is_public"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	AuthorID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"author_id"`
	Author       *User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// BeforeCreate assigns an ID so the model works on both postgres and sqlite.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
