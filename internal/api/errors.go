package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewise/recipehub/backend/internal/service"
)

// respondError maps service-layer sentinel errors onto HTTP statuses. Unknown
// errors are logged and surface as a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "recipient not found"})
	case errors.Is(err, service.ErrSelfShare):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot share a recipe with yourself"})
	case errors.Is(err, service.ErrModelResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": "model returned an unusable response"})
	default:
		log.Printf("[API] internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// isServiceSentinel reports whether err is one of the service-layer errors
// respondError has a dedicated status for.
func isServiceSentinel(err error) bool {
	return errors.Is(err, service.ErrNotFound) ||
		errors.Is(err, service.ErrForbidden) ||
		errors.Is(err, service.ErrRecipientNotFound) ||
		errors.Is(err, service.ErrSelfShare) ||
		errors.Is(err, service.ErrModelResponse)
}
