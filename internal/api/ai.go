package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/recipehub/backend/internal/middleware"
	"github.com/platewise/recipehub/backend/internal/service"
)

// AIHandler handles the model-backed endpoints. The handler never persists
// anything; generated recipes are returned to the client for review first.
type AIHandler struct {
	llmService  service.LLMServiceInterface
	validator   middleware.TokenValidator
	rateLimiter *middleware.RateLimiter
}

// NewAIHandler creates a new AIHandler instance. rateLimiter may be nil when
// redis is not configured.
func NewAIHandler(llmService service.LLMServiceInterface, validator middleware.TokenValidator, rateLimiter *middleware.RateLimiter) *AIHandler {
	return &AIHandler{
		llmService:  llmService,
		validator:   validator,
		rateLimiter: rateLimiter,
	}
}

// RegisterRoutes registers the AI routes behind auth and, when available,
// the per-user rate limit.
func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai", middleware.AuthMiddleware(h.validator))
	if h.rateLimiter != nil {
		ai.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		ai.POST("/generate", h.GenerateRecipe)
		ai.POST("/substitute", h.GetSubstitutes)
		ai.POST("/meal-plan", h.GenerateMealPlan)
	}
}

// GenerateRecipe asks the model for a complete recipe from a free-text prompt.
func (h *AIHandler) GenerateRecipe(c *gin.Context) {
	var req AIGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.llmService.GenerateRecipe(c.Request.Context(), req.Prompt, service.GenerateRecipeOptions{
		Servings: req.Servings,
		Dietary:  req.Dietary,
		Cuisine:  req.Cuisine,
	})
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// GetSubstitutes asks the model for replacements for an ingredient.
func (h *AIHandler) GetSubstitutes(c *gin.Context) {
	var req AISubstituteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	substitutes, err := h.llmService.GetIngredientSubstitutes(c.Request.Context(), req.Ingredient, service.SubstituteOptions{
		RecipeContext: req.RecipeContext,
		Dietary:       req.Dietary,
	})
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"substitutes": substitutes})
}

// GenerateMealPlan asks the model for a weekly meal plan.
func (h *AIHandler) GenerateMealPlan(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AIMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plan, err := h.llmService.GenerateMealPlan(c.Request.Context(), userID.String(), service.MealPlanOptions{
		Preferences: req.Preferences,
		Dietary:     req.Dietary,
		Servings:    req.Servings,
		DaysCount:   req.DaysCount,
	})
	if err != nil {
		respondAIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_plan": plan})
}

// respondAIError treats any non-sentinel upstream failure as a bad gateway:
// the client's request was fine, the model backend was not.
func respondAIError(c *gin.Context, err error) {
	if isServiceSentinel(err) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": "AI service unavailable"})
}
