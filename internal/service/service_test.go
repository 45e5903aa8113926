package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/platewise/recipehub/backend/internal/models"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique name per test so parallel tests never share state
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.SharedRecipe{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    uuid.New(),
		Email: email,
		Name:  "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID, mutate ...func(*models.Recipe)) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Title:       "Garlic Butter Pasta",
		Description: "Fast weeknight pasta.",
		Ingredients: models.IngredientList{
			{Name: "spaghetti", Amount: 200, Unit: "g"},
			{Name: "garlic", Amount: 3, Unit: "cloves"},
			{Name: "butter", Amount: 50, Unit: "g"},
		},
		Instructions: models.JSONBStringArray{"Boil pasta.", "Melt butter with garlic.", "Toss together."},
		Category:     models.CategoryDinner,
		Difficulty:   models.DifficultyEasy,
		PrepTime:     5,
		CookTime:     15,
		Servings:     2,
		Status:       models.StatusToTry,
		Tags:         models.JSONBStringArray{"pasta", "italian"},
		AuthorID:     authorID,
	}
	for _, fn := range mutate {
		fn(recipe)
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
