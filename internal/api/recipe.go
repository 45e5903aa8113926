package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platewise/recipehub/backend/internal/middleware"
	"github.com/platewise/recipehub/backend/internal/models"
	"github.com/platewise/recipehub/backend/internal/service"
)

// RecipeHandler handles recipe CRUD endpoints.
type RecipeHandler struct {
	recipeService *service.RecipeService
	validator     middleware.TokenValidator
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipeService *service.RecipeService, validator middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

// RegisterRoutes registers the recipe routes. Reads allow anonymous callers,
// mutations require authentication.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.validator), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.validator), h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.validator), h.CreateRecipe)
		recipes.PATCH("/:id", middleware.AuthMiddleware(h.validator), h.UpdateRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.validator), h.DeleteRecipe)
	}
}

// ListRecipes returns recipes visible to the caller, filtered by the query
// parameters.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filters := service.RecipeFilters{
		Search:     c.Query("search"),
		Ingredient: c.Query("ingredient"),
		Cuisine:    c.Query("cuisine"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Status:     c.Query("status"),
	}

	if raw := c.Query("max_prep_time"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_prep_time must be a non-negative integer"})
			return
		}
		filters.MaxPrepTime = &n
	}
	if raw := c.Query("author_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "author_id must be a valid UUID"})
			return
		}
		filters.AuthorID = &id
	}

	requester := requesterID(c)
	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), filters, requester)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns a single recipe with the caller's edit capability.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, canEdit, err := h.recipeService.GetRecipe(c.Request.Context(), id, requesterID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecipeResponse{Recipe: *recipe, CanEdit: canEdit})
}

// CreateRecipe creates a recipe owned by the caller.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := &models.Recipe{
		Title:        req.Title,
		Description:  req.Description,
		Ingredients:  models.IngredientList(req.Ingredients),
		Instructions: models.JSONBStringArray(req.Instructions),
		Category:     defaultString(req.Category, models.CategoryOther),
		Difficulty:   defaultString(req.Difficulty, models.DifficultyMedium),
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     defaultInt(req.Servings, 4),
		ImageURL:     req.ImageURL,
		Status:       defaultString(req.Status, models.StatusToTry),
		IsPublic:     req.IsPublic,
		Tags:         models.JSONBStringArray(req.Tags),
		AuthorID:     userID,
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RecipeResponse{Recipe: *created, CanEdit: true})
}

// UpdateRecipe applies a partial update to a recipe the caller may edit.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := &service.RecipeUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		Category:     req.Category,
		Difficulty:   req.Difficulty,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     req.Servings,
		ImageURL:     req.ImageURL,
		Status:       req.Status,
		IsPublic:     req.IsPublic,
		Tags:         req.Tags,
	}
	if req.Ingredients != nil {
		list := models.IngredientList(*req.Ingredients)
		update.Ingredients = &list
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecipeResponse{Recipe: *recipe, CanEdit: true})
}

// DeleteRecipe deletes a recipe the caller owns.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requesterID returns a pointer to the caller's ID, or nil for anonymous
// requests.
func requesterID(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.CurrentUserID(c); ok {
		return &id
	}
	return nil
}

// pathID parses the :id path parameter, responding 400 itself on failure.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return uuid.Nil, false
	}
	return id, true
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func defaultInt(value, fallback int) int {
	if value == 0 {
		return fallback
	}
	return value
}
