package handlers

import (
	"net/http"

	"linkbio/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every request so log lines can be correlated.
func (h *Handler) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (h *Handler) RateLimitMiddleware(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
