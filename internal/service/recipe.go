package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/recipehub/backend/internal/models"
)

// RecipeFilters is the optional criteria set for listing recipes. Zero values
// mean "not provided".
type RecipeFilters struct {
	Search      string
	Ingredient  string
	Cuisine     string
	MaxPrepTime *int
	Category    string
	Difficulty  string
	Status      string
	AuthorID    *uuid.UUID
}

// RecipeUpdate carries a partial recipe update. Nil fields are left unchanged;
// the author can never be updated.
type RecipeUpdate struct {
	Title        *string
	Description  *string
	Ingredients  *models.IngredientList
	Instructions *[]string
	Category     *string
	Difficulty   *string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	ImageURL     *string
	Status       *string
	IsPublic     *bool
	Tags         *[]string
}

// RecipeService handles recipe CRUD with access control applied before any
// restricted data is returned or mutated.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe persists a new recipe. The caller must have set AuthorID from
// the authenticated identity.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Preload("Author").First(recipe, "id = ?", recipe.ID).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe the requester is allowed to read, along with
// the requester's computed edit capability. Private recipes the requester has
// no grant for surface as ErrNotFound so their existence is not leaked.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID, requester *uuid.UUID) (*models.Recipe, bool, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Preload("Author").First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	grant, err := s.grantFor(ctx, id, requester)
	if err != nil {
		return nil, false, err
	}

	decision := CanReadRecipe(&recipe, requester, grant)
	if !decision.Allowed {
		return nil, false, ErrNotFound
	}
	return &recipe, decision.CanEdit, nil
}

// UpdateRecipe applies a partial update on behalf of the requester. Readers
// without edit rights get ErrForbidden; callers who may not even read the
// recipe get the same ErrNotFound as a missing ID.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, requester uuid.UUID, update *RecipeUpdate) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	grant, err := s.grantFor(ctx, id, &requester)
	if err != nil {
		return nil, err
	}
	if !CanReadRecipe(&recipe, &requester, grant).Allowed {
		return nil, ErrNotFound
	}
	if !CanWriteRecipe(&recipe, requester, grant) {
		return nil, ErrForbidden
	}

	applyUpdate(&recipe, update)
	if err := s.db.WithContext(ctx).Save(&recipe).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Preload("Author").First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe. Only the owner may delete; edit grants do
// not extend to deletion.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, requester uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CanDeleteRecipe(&recipe, requester) {
		grant, err := s.grantFor(ctx, id, &requester)
		if err != nil {
			return err
		}
		if !CanReadRecipe(&recipe, &requester, grant).Allowed {
			return ErrNotFound
		}
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ?", id).Error
}

// ListRecipes translates the filter set into a predicate and returns matching
// recipes, newest first. With an explicit author scope the predicate ignores
// visibility; otherwise only public recipes and the requester's own surface.
func (s *RecipeService) ListRecipes(ctx context.Context, filters RecipeFilters, requester *uuid.UUID) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	switch {
	case filters.AuthorID != nil:
		query = query.Where("author_id = ?", *filters.AuthorID)
	case requester != nil:
		query = query.Where("is_public = ? OR author_id = ?", true, *requester)
	default:
		query = query.Where("is_public = ?", true)
	}

	// JSONB columns need a text cast on postgres; sqlite stores them as text
	ingredientsCol := "ingredients"
	tagsCol := "tags"
	if s.db.Dialector.Name() == "postgres" {
		ingredientsCol = "ingredients::text"
		tagsCol = "tags::text"
	}

	var textClauses []string
	var textArgs []interface{}
	if filters.Search != "" {
		like := "%" + strings.ToLower(filters.Search) + "%"
		textClauses = append(textClauses,
			"LOWER(title) LIKE ?",
			"LOWER(description) LIKE ?",
			"LOWER("+ingredientsCol+") LIKE ?",
		)
		textArgs = append(textArgs, like, like, like)
	}
	if filters.Ingredient != "" {
		like := "%" + strings.ToLower(filters.Ingredient) + "%"
		textClauses = append(textClauses, "LOWER("+ingredientsCol+") LIKE ?")
		textArgs = append(textArgs, like)
	}
	if filters.Cuisine != "" {
		// Heuristic: cuisine lives in tags or the title, there is no
		// structured cuisine column
		like := "%" + strings.ToLower(filters.Cuisine) + "%"
		textClauses = append(textClauses, "LOWER("+tagsCol+") LIKE ?", "LOWER(title) LIKE ?")
		textArgs = append(textArgs, like, like)
	}
	if len(textClauses) > 0 {
		query = query.Where("("+strings.Join(textClauses, " OR ")+")", textArgs...)
	}

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty = ?", filters.Difficulty)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.MaxPrepTime != nil {
		query = query.Where("prep_time <= ?", *filters.MaxPrepTime)
	}

	var recipes []models.Recipe
	if err := query.Preload("Author").Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// grantFor returns the share row for (recipeID, requester), or nil when the
// requester is anonymous or no grant exists.
func (s *RecipeService) grantFor(ctx context.Context, recipeID uuid.UUID, requester *uuid.UUID) (*models.SharedRecipe, error) {
	if requester == nil {
		return nil, nil
	}
	var grant models.SharedRecipe
	err := s.db.WithContext(ctx).
		First(&grant, "recipe_id = ? AND shared_with_id = ?", recipeID, *requester).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

func applyUpdate(recipe *models.Recipe, update *RecipeUpdate) {
	if update.Title != nil {
		recipe.Title = *update.Title
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.Ingredients != nil {
		recipe.Ingredients = *update.Ingredients
	}
	if update.Instructions != nil {
		recipe.Instructions = models.JSONBStringArray(*update.Instructions)
	}
	if update.Category != nil {
		recipe.Category = *update.Category
	}
	if update.Difficulty != nil {
		recipe.Difficulty = *update.Difficulty
	}
	if update.PrepTime != nil {
		recipe.PrepTime = *update.PrepTime
	}
	if update.CookTime != nil {
		recipe.CookTime = *update.CookTime
	}
	if update.Servings != nil {
		recipe.Servings = *update.Servings
	}
	if update.ImageURL != nil {
		recipe.ImageURL = *update.ImageURL
	}
	if update.Status != nil {
		recipe.Status = *update.Status
	}
	if update.IsPublic != nil {
		recipe.IsPublic = *update.IsPublic
	}
	if update.Tags != nil {
		recipe.Tags = models.JSONBStringArray(*update.Tags)
	}
}
