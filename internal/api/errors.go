package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/budget-chef/backend/internal/apperrors"
	"github.com/pageza/budget-chef/backend/internal/logger"
)

// respondError writes the public message for err with its mapped status.
// Server-side failures are logged with their cause; the cause never reaches the client.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		logger.Named("api").Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", apperrors.KindOf(err).String()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, apperrors.ErrorResponse{Error: apperrors.PublicMessage(err)})
}
