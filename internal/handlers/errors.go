package handlers

import (
	"errors"
	"net/http"

	"github.com/SscSPs/property_market_app/internal/apperrors"
	"github.com/SscSPs/property_market_app/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto an HTTP status. Validation
// and not-found messages are passed through; everything else is hidden
// behind fallback.
func respondServiceError(c *gin.Context, log *logger.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		log.Warnw("Validation error", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		log.Warnw("Resource not found", "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		log.Warnw("Duplicate resource", "error", err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		log.Warnw("Concurrent modification", "error", err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Errorw(fallback, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
