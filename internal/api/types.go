package api

import (
	"github.com/google/uuid"

	"github.com/platewise/recipehub/backend/internal/models"
)

// CreateRecipeRequest is the payload for creating a recipe. Optional enum
// fields get server-side defaults when omitted.
type CreateRecipeRequest struct {
	Title        string                `json:"title" binding:"required,max=255"`
	Description  string                `json:"description"`
	Ingredients  []models.Ingredient   `json:"ingredients" binding:"required,min=1,dive"`
	Instructions []string              `json:"instructions" binding:"required,min=1"`
	Category     string                `json:"category" binding:"omitempty,oneof=breakfast lunch dinner dessert snack beverage other"`
	Difficulty   string                `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	PrepTime     int                   `json:"prep_time" binding:"min=0"`
	CookTime     int                   `json:"cook_time" binding:"min=0"`
	Servings     int                   `json:"servings" binding:"omitempty,min=1"`
	ImageURL     string                `json:"image_url"`
	Status       string                `json:"status" binding:"omitempty,oneof=favorite to_try made_before"`
	IsPublic     bool                  `json:"is_public"`
	Tags         []string              `json:"tags"`
}

// UpdateRecipeRequest is a partial update; absent fields stay unchanged.
type UpdateRecipeRequest struct {
	Title        *string              `json:"title" binding:"omitempty,max=255"`
	Description  *string              `json:"description"`
	Ingredients  *[]models.Ingredient `json:"ingredients" binding:"omitempty,min=1,dive"`
	Instructions *[]string            `json:"instructions" binding:"omitempty,min=1"`
	Category     *string              `json:"category" binding:"omitempty,oneof=breakfast lunch dinner dessert snack beverage other"`
	Difficulty   *string              `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	PrepTime     *int                 `json:"prep_time" binding:"omitempty,min=0"`
	CookTime     *int                 `json:"cook_time" binding:"omitempty,min=0"`
	Servings     *int                 `json:"servings" binding:"omitempty,min=1"`
	ImageURL     *string              `json:"image_url"`
	Status       *string              `json:"status" binding:"omitempty,oneof=favorite to_try made_before"`
	IsPublic     *bool                `json:"is_public"`
	Tags         *[]string            `json:"tags"`
}

// RecipeResponse is a recipe plus the caller's computed edit capability.
type RecipeResponse struct {
	models.Recipe
	CanEdit bool `json:"can_edit"`
}

// ShareRequest grants (or re-grants) a user access to a recipe by email.
type ShareRequest struct {
	Email   string `json:"email" binding:"required,email"`
	CanEdit bool   `json:"can_edit"`
}

// RevokeShareRequest removes a recipient's grant.
type RevokeShareRequest struct {
	SharedWithID uuid.UUID `json:"shared_with_id" binding:"required"`
}

// AIGenerateRequest asks the model for a new recipe.
type AIGenerateRequest struct {
	Prompt   string   `json:"prompt" binding:"required,max=2000"`
	Servings int      `json:"servings" binding:"omitempty,min=1"`
	Dietary  []string `json:"dietary"`
	Cuisine  string   `json:"cuisine"`
}

// AISubstituteRequest asks the model for ingredient substitutes.
type AISubstituteRequest struct {
	Ingredient    string   `json:"ingredient" binding:"required,max=255"`
	RecipeContext string   `json:"recipe_context"`
	Dietary       []string `json:"dietary"`
}

// AIMealPlanRequest asks the model for a weekly meal plan.
type AIMealPlanRequest struct {
	Preferences []string `json:"preferences"`
	Dietary     []string `json:"dietary"`
	Servings    int      `json:"servings" binding:"omitempty,min=1"`
	DaysCount   int      `json:"days_count" binding:"omitempty,min=1,max=7"`
}
