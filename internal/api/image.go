package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/recipehub/backend/internal/middleware"
	"github.com/platewise/recipehub/backend/internal/service"
)

// 5MB is plenty for a recipe photo
const maxImageSize = 5 << 20

// ImageHandler handles recipe image uploads.
type ImageHandler struct {
	recipeService *service.RecipeService
	imageService  service.ImageServiceInterface
	validator     middleware.TokenValidator
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(recipeService *service.RecipeService, imageService service.ImageServiceInterface, validator middleware.TokenValidator) *ImageHandler {
	return &ImageHandler{
		recipeService: recipeService,
		imageService:  imageService,
		validator:     validator,
	}
}

// RegisterRoutes registers the image upload route
func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/:id/image", middleware.AuthMiddleware(h.validator), h.UploadImage)
}

// UploadImage accepts a multipart "image" part, stores it, and points the
// recipe at the new URL. The caller needs edit rights on the recipe.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	// Edit check happens before we touch storage
	_, canEdit, err := h.recipeService.GetRecipe(c.Request.Context(), recipeID, &userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canEdit {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the 5MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		respondError(c, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), recipeID, data, contentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), recipeID, userID, &service.RecipeUpdate{ImageURL: &url})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecipeResponse{Recipe: *recipe, CanEdit: true})
}
