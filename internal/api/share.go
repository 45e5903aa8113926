package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/recipehub/backend/internal/middleware"
	"github.com/platewise/recipehub/backend/internal/service"
)

// ShareHandler handles recipe sharing endpoints.
type ShareHandler struct {
	shareService *service.ShareService
	validator    middleware.TokenValidator
}

// NewShareHandler creates a new ShareHandler instance
func NewShareHandler(shareService *service.ShareService, validator middleware.TokenValidator) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		validator:    validator,
	}
}

// RegisterRoutes registers the sharing routes. All of them require
// authentication.
func (h *ShareHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := middleware.AuthMiddleware(h.validator)

	shares := router.Group("/recipes/:id/share", auth)
	{
		shares.GET("", h.ListShares)
		shares.POST("", h.ShareRecipe)
		shares.DELETE("", h.RevokeShare)
	}
	router.GET("/shared", auth, h.ListSharedWithMe)
}

// ShareRecipe grants the user behind the given email access to the recipe.
// Re-sharing updates the existing grant's edit flag.
func (h *ShareHandler) ShareRecipe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := h.shareService.ShareRecipe(c.Request.Context(), recipeID, userID, req.Email, req.CanEdit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"share": share})
}

// ListShares returns every grant on a recipe the caller owns.
func (h *ShareHandler) ListShares(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	shares, err := h.shareService.ListShares(c.Request.Context(), recipeID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares})
}

// RevokeShare removes a recipient's grant from a recipe the caller owns.
func (h *ShareHandler) RevokeShare(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req RevokeShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.shareService.RevokeShare(c.Request.Context(), recipeID, userID, req.SharedWithID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSharedWithMe returns the recipes other users have shared with the
// caller, newest grant first.
func (h *ShareHandler) ListSharedWithMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	shares, err := h.shareService.ListSharedWithMe(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares})
}
