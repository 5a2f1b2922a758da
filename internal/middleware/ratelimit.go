package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-events/venues/internal/apperr"
)

// Limiter decides whether another request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests with 429 once the client exceeds the limiter's budget for the route.
// Limiter failures let the request through.
func RateLimit(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + c.ClientIP()
		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}
		if !ok {
			abort(c, apperr.TooManyRequests("Too many requests, try again later"))
			return
		}
		c.Next()
	}
}
