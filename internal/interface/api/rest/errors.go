package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"image-hosting-api/internal/application/services"
	"image-hosting-api/internal/domain"
	"image-hosting-api/internal/interface/api/rest/middleware"
)

// respondError maps a service error onto a status code. Not-found bodies are
// identical whether the resource is missing or owned by someone else.
func respondError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStorageUnavailable):
		logger.Error(op+"() error", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "object storage unavailable, try again later"})
	default:
		logger.Error(op+"() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// callerOrAbort reads the authenticated caller or answers 401.
func callerOrAbort(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.CallerUUID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return uuid.Nil, false
	}
	return id, true
}
