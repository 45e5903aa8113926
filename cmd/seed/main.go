package main

import (
	"log"

	"github.com/google/uuid"

	"github.com/platewise/recipehub/backend/config"
	"github.com/platewise/recipehub/backend/internal/database"
	"github.com/platewise/recipehub/backend/internal/models"
)

// Seeds a development database with two demo users and a handful of recipes,
// including one private recipe shared between them.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	alice := models.User{
		ID:    uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Email: "alice@example.com",
		Name:  "Alice Demo",
	}
	bob := models.User{
		ID:    uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Email: "bob@example.com",
		Name:  "Bob Demo",
	}
	for _, u := range []*models.User{&alice, &bob} {
		if err := db.FirstOrCreate(u, "id = ?", u.ID).Error; err != nil {
			log.Fatalf("Failed to seed user %s: %v", u.Email, err)
		}
	}

	recipes := []models.Recipe{
		{
			Title:       "Shakshuka",
			Description: "Eggs poached in spiced tomato sauce.",
			Ingredients: models.IngredientList{
				{Name: "eggs", Amount: 4, Unit: "pcs"},
				{Name: "crushed tomatoes", Amount: 400, Unit: "g"},
				{Name: "onion", Amount: 1, Unit: "pcs"},
				{Name: "smoked paprika", Amount: 1, Unit: "tsp"},
			},
			Instructions: models.JSONBStringArray{
				"Soften the onion in olive oil.",
				"Add tomatoes and paprika, simmer 10 minutes.",
				"Crack in the eggs and cover until just set.",
			},
			Category:   models.CategoryBreakfast,
			Difficulty: models.DifficultyEasy,
			PrepTime:   10,
			CookTime:   20,
			Servings:   2,
			Status:     models.StatusFavorite,
			IsPublic:   true,
			Tags:       models.JSONBStringArray{"middle-eastern", "vegetarian"},
			AuthorID:   alice.ID,
		},
		{
			Title:       "Weeknight Ramen",
			Description: "Quick miso ramen with whatever is in the fridge.",
			Ingredients: models.IngredientList{
				{Name: "ramen noodles", Amount: 200, Unit: "g"},
				{Name: "miso paste", Amount: 2, Unit: "tbsp"},
				{Name: "scallions", Amount: 2, Unit: "pcs"},
				{Name: "soft-boiled egg", Amount: 1, Unit: "pcs", Notes: "6.5 minutes"},
			},
			Instructions: models.JSONBStringArray{
				"Whisk miso into simmering stock.",
				"Cook noodles separately and drain.",
				"Assemble bowls and top with scallions and egg.",
			},
			Category:   models.CategoryDinner,
			Difficulty: models.DifficultyMedium,
			PrepTime:   10,
			CookTime:   15,
			Servings:   1,
			Status:     models.StatusMadeBefore,
			IsPublic:   false,
			Tags:       models.JSONBStringArray{"japanese", "noodles"},
			AuthorID:   alice.ID,
		},
		{
			Title:       "Banana Bread",
			Description: "Uses up the black bananas nobody will eat.",
			Ingredients: models.IngredientList{
				{Name: "overripe bananas", Amount: 3, Unit: "pcs"},
				{Name: "flour", Amount: 250, Unit: "g"},
				{Name: "butter", Amount: 115, Unit: "g"},
				{Name: "sugar", Amount: 150, Unit: "g"},
			},
			Instructions: models.JSONBStringArray{
				"Mash bananas with melted butter and sugar.",
				"Fold in flour, do not overmix.",
				"Bake at 175C for 55 minutes.",
			},
			Category:   models.CategoryDessert,
			Difficulty: models.DifficultyEasy,
			PrepTime:   15,
			CookTime:   55,
			Servings:   8,
			Status:     models.StatusToTry,
			IsPublic:   true,
			Tags:       models.JSONBStringArray{"baking"},
			AuthorID:   bob.ID,
		},
	}

	for i := range recipes {
		if err := db.FirstOrCreate(&recipes[i], "title = ? AND author_id = ?",
			recipes[i].Title, recipes[i].AuthorID).Error; err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", recipes[i].Title, err)
		}
	}

	// Alice shares her private ramen recipe with Bob, read-only
	share := models.SharedRecipe{
		RecipeID:     recipes[1].ID,
		SharedByID:   alice.ID,
		SharedWithID: bob.ID,
		CanEdit:      false,
	}
	if err := db.FirstOrCreate(&share, "recipe_id = ? AND shared_with_id = ?",
		share.RecipeID, share.SharedWithID).Error; err != nil {
		log.Fatalf("Failed to seed share: %v", err)
	}

	log.Println("Seed data loaded")
}
