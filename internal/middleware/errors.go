package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-events/venues/internal/apperr"
	"github.com/aura-events/venues/pkg/response"
)

// Errors renders the last error attached with c.Error as the JSON error body.
// Client errors are written as-is; anything else becomes a logged 500.
func Errors(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if e, ok := apperr.As(err); ok {
			response.Error(c, e.Status, e.Message, e.Fields)
			return
		}
		logger.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)),
		)
		response.Internal(c)
	}
}
