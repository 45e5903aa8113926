package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/platewise/recipehub/backend/internal/middleware"
	"github.com/platewise/recipehub/backend/internal/service"
)

// AuthHandler exposes identity endpoints. Authentication itself happens at
// the identity provider; this handler only mirrors users locally.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/sync", h.SyncUser)
	router.GET("/users/me", middleware.AuthMiddleware(h.authService), h.GetCurrentUser)
}

// SyncUser upserts the local user record from the caller's provider token.
// Clients call this after login so shares-by-email can resolve the account.
func (h *AuthHandler) SyncUser(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
		return
	}

	claims, err := h.authService.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	user, err := h.authService.SyncUser(c.Request.Context(), claims)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetCurrentUser returns the caller's local user record.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
