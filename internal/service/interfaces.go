package service

import (
	"context"

	"github.com/google/uuid"
)

// LLMServiceInterface defines what handlers need from the model backend,
// allowing tests to substitute a fake.
type LLMServiceInterface interface {
	GenerateRecipe(ctx context.Context, prompt string, opts GenerateRecipeOptions) (*GeneratedRecipe, error)
	GetIngredientSubstitutes(ctx context.Context, ingredient string, opts SubstituteOptions) ([]IngredientSubstitute, error)
	GenerateMealPlan(ctx context.Context, userID string, opts MealPlanOptions) (*MealPlan, error)
}

// ImageServiceInterface abstracts image storage for handler tests.
type ImageServiceInterface interface {
	UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error)
}
