package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbassignana/EclipseURL/logger"
	"github.com/tbassignana/EclipseURL/services"
)

// respondError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as a plain 500 so internals never leak to the caller.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLinkInactive), errors.Is(err, services.ErrLinkExpired):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidURL),
		errors.Is(err, services.ErrInvalidAlias),
		errors.Is(err, services.ErrAliasTaken),
		errors.Is(err, services.ErrInvalidExpiration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCodeExhausted):
		logger.Log.Error().Err(err).Msg("short code generation ran out of attempts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
