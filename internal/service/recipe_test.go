package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/recipehub/backend/internal/models"
)

func TestCreateAndGetRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	recipe := createTestRecipe(t, db, owner.ID)

	got, canEdit, err := svc.GetRecipe(ctx, recipe.ID, &owner.ID)
	require.NoError(t, err)
	assert.True(t, canEdit)
	assert.Equal(t, recipe.Title, got.Title)
	require.NotNil(t, got.Author)
	assert.Equal(t, owner.Email, got.Author.Email)

	// Ingredient order survives the round trip
	require.Len(t, got.Ingredients, 3)
	assert.Equal(t, "spaghetti", got.Ingredients[0].Name)
	assert.Equal(t, "garlic", got.Ingredients[1].Name)
	assert.Equal(t, "butter", got.Ingredients[2].Name)
}

func TestGetRecipeHidesPrivateExistence(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	recipe := createTestRecipe(t, db, owner.ID)

	// Stranger and anonymous both get the same signal as a missing ID
	_, _, err := svc.GetRecipe(ctx, recipe.ID, &stranger.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.GetRecipe(ctx, recipe.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.GetRecipe(ctx, uuid.New(), &owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRecipeWithGrant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	reader := createTestUser(t, db, "reader@example.com")
	recipe := createTestRecipe(t, db, owner.ID)

	require.NoError(t, db.Create(&models.SharedRecipe{
		RecipeID:     recipe.ID,
		SharedByID:   owner.ID,
		SharedWithID: reader.ID,
		CanEdit:      false,
	}).Error)

	got, canEdit, err := svc.GetRecipe(ctx, recipe.ID, &reader.ID)
	require.NoError(t, err)
	assert.False(t, canEdit)
	assert.Equal(t, recipe.ID, got.ID)
}

func TestUpdateRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	recipe := createTestRecipe(t, db, owner.ID)

	title := "Renamed Pasta"
	public := true
	got, err := svc.UpdateRecipe(ctx, recipe.ID, owner.ID, &RecipeUpdate{
		Title:    &title,
		IsPublic: &public,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Pasta", got.Title)
	assert.True(t, got.IsPublic)
	// Untouched fields survive a partial update
	assert.Equal(t, recipe.Description, got.Description)
	assert.Equal(t, recipe.AuthorID, got.AuthorID)
}

func TestUpdateRecipeAccessControl(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	reader := createTestUser(t, db, "reader@example.com")
	editor := createTestUser(t, db, "editor@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	recipe := createTestRecipe(t, db, owner.ID)

	require.NoError(t, db.Create(&models.SharedRecipe{
		RecipeID: recipe.ID, SharedByID: owner.ID, SharedWithID: reader.ID, CanEdit: false,
	}).Error)
	require.NoError(t, db.Create(&models.SharedRecipe{
		RecipeID: recipe.ID, SharedByID: owner.ID, SharedWithID: editor.ID, CanEdit: true,
	}).Error)

	title := "Hijacked"

	// A reader can see the recipe, so the denial is explicit
	_, err := svc.UpdateRecipe(ctx, recipe.ID, reader.ID, &RecipeUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	// A stranger cannot see it, so nothing is revealed
	_, err = svc.UpdateRecipe(ctx, recipe.ID, stranger.ID, &RecipeUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.UpdateRecipe(ctx, recipe.ID, editor.ID, &RecipeUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", got.Title)
	// Editing never reassigns ownership
	assert.Equal(t, owner.ID, got.AuthorID)
}

func TestDeleteRecipe(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner@example.com")
	editor := createTestUser(t, db, "editor@example.com")
	recipe := createTestRecipe(t, db, owner.ID)

	require.NoError(t, db.Create(&models.SharedRecipe{
		RecipeID: recipe.ID, SharedByID: owner.ID, SharedWithID: editor.ID, CanEdit: true,
	}).Error)

	// Even an edit grant does not allow deletion
	err := svc.DeleteRecipe(ctx, recipe.ID, editor.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.DeleteRecipe(ctx, recipe.ID, owner.ID))

	_, _, err = svc.GetRecipe(ctx, recipe.ID, &owner.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRecipesVisibility(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	createTestRecipe(t, db, alice.ID, func(r *models.Recipe) { r.Title = "Alice Public"; r.IsPublic = true })
	createTestRecipe(t, db, alice.ID, func(r *models.Recipe) { r.Title = "Alice Private" })
	createTestRecipe(t, db, bob.ID, func(r *models.Recipe) { r.Title = "Bob Private" })

	// Anonymous sees only public recipes
	recipes, err := svc.ListRecipes(ctx, RecipeFilters{}, nil)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Alice Public", recipes[0].Title)

	// Alice sees public plus her own private, never Bob's private
	recipes, err = svc.ListRecipes(ctx, RecipeFilters{}, &alice.ID)
	require.NoError(t, err)
	titles := recipeTitles(recipes)
	assert.ElementsMatch(t, []string{"Alice Public", "Alice Private"}, titles)
}

func TestListRecipesFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")

	createTestRecipe(t, db, alice.ID, func(r *models.Recipe) {
		r.Title = "Thai Green Curry"
		r.IsPublic = true
		r.Category = models.CategoryDinner
		r.Difficulty = models.DifficultyHard
		r.PrepTime = 30
		r.Tags = models.JSONBStringArray{"thai", "curry"}
		r.Ingredients = models.IngredientList{{Name: "coconut milk", Amount: 400, Unit: "ml"}}
	})
	createTestRecipe(t, db, alice.ID, func(r *models.Recipe) {
		r.Title = "Overnight Oats"
		r.IsPublic = true
		r.Category = models.CategoryBreakfast
		r.Difficulty = models.DifficultyEasy
		r.PrepTime = 5
		r.Tags = models.JSONBStringArray{"oats"}
		r.Ingredients = models.IngredientList{{Name: "rolled oats", Amount: 80, Unit: "g"}}
	})

	// Free-text search matches titles case-insensitively
	recipes, err := svc.ListRecipes(ctx, RecipeFilters{Search: "CURRY"}, nil)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Thai Green Curry", recipes[0].Title)

	// Ingredient search digs into the JSON column
	recipes, err = svc.ListRecipes(ctx, RecipeFilters{Ingredient: "coconut"}, nil)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Thai Green Curry", recipes[0].Title)

	// Cuisine matches tags
	recipes, err = svc.ListRecipes(ctx, RecipeFilters{Cuisine: "thai"}, nil)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	// Exact filters are conjunctive
	maxPrep := 10
	recipes, err = svc.ListRecipes(ctx, RecipeFilters{
		Category:    models.CategoryBreakfast,
		Difficulty:  models.DifficultyEasy,
		MaxPrepTime: &maxPrep,
	}, nil)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Overnight Oats", recipes[0].Title)

	// Conflicting conjunction matches nothing
	recipes, err = svc.ListRecipes(ctx, RecipeFilters{
		Search:   "curry",
		Category: models.CategoryBreakfast,
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestListRecipesAuthorScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	createTestRecipe(t, db, alice.ID, func(r *models.Recipe) { r.Title = "Mine Private" })
	createTestRecipe(t, db, alice.ID, func(r *models.Recipe) { r.Title = "Mine Public"; r.IsPublic = true })
	createTestRecipe(t, db, bob.ID, func(r *models.Recipe) { r.Title = "Bobs"; r.IsPublic = true })

	recipes, err := svc.ListRecipes(ctx, RecipeFilters{AuthorID: &alice.ID}, &alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Mine Private", "Mine Public"}, recipeTitles(recipes))
}

func TestListRecipesOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")

	older := createTestRecipe(t, db, alice.ID, func(r *models.Recipe) { r.Title = "Older"; r.IsPublic = true })
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	createTestRecipe(t, db, alice.ID, func(r *models.Recipe) { r.Title = "Newer"; r.IsPublic = true })

	recipes, err := svc.ListRecipes(ctx, RecipeFilters{}, nil)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Newer", recipes[0].Title)
	assert.Equal(t, "Older", recipes[1].Title)
}

func recipeTitles(recipes []models.Recipe) []string {
	titles := make([]string, len(recipes))
	for i, r := range recipes {
		titles[i] = r.Title
	}
	return titles
}
