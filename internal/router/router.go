package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platewise/recipehub/backend/config"
	"github.com/platewise/recipehub/backend/internal/api"
	"github.com/platewise/recipehub/backend/internal/middleware"
	"github.com/platewise/recipehub/backend/internal/service"
)

// Services bundles everything the router wires into handlers. LLM, Image and
// Redis are optional; their routes are only mounted when present.
type Services struct {
	Auth   *service.AuthService
	Recipe *service.RecipeService
	Share  *service.ShareService
	LLM    service.LLMServiceInterface
	Image  service.ImageServiceInterface
	Redis  *redis.Client
}

// SetupRouter assembles the gin engine with middleware and all API routes
// under /api/v1.
func SetupRouter(cfg *config.Config, db *gorm.DB, svcs Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	v1 := router.Group("/api/v1")

	api.NewHealthHandler(db, svcs.Redis).RegisterRoutes(v1)
	api.NewAuthHandler(svcs.Auth).RegisterRoutes(v1)
	api.NewRecipeHandler(svcs.Recipe, svcs.Auth).RegisterRoutes(v1)
	api.NewShareHandler(svcs.Share, svcs.Auth).RegisterRoutes(v1)

	if svcs.LLM != nil {
		var limiter *middleware.RateLimiter
		if svcs.Redis != nil {
			limiter = middleware.NewAIRateLimiter(svcs.Redis)
		}
		api.NewAIHandler(svcs.LLM, svcs.Auth, limiter).RegisterRoutes(v1)
	}
	if svcs.Image != nil {
		api.NewImageHandler(svcs.Recipe, svcs.Image, svcs.Auth).RegisterRoutes(v1)
	}

	return router
}
