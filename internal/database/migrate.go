package database

import (
	"gorm.io/gorm"

	"github.com/platewise/recipehub/backend/internal/models"
)

// AutoMigrate creates or updates the schema for all models. Production runs
// the SQL migrations in migrations/ via cmd/migrate instead; this path is for
// development and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.SharedRecipe{},
	)
}
