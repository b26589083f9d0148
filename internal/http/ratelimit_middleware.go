package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"researchbot/internal/service"
)

// RateLimitMiddleware aplica el limiter por IP de cliente + path. La IP sale
// de gin.ClientIP (honra X-Forwarded-For / X-Real-IP). Un limiter nulo o un
// backend caído dejan pasar el request sin restricción.
func RateLimitMiddleware(logger *zap.Logger, limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		identifier := c.ClientIP() + ":" + c.Request.URL.Path
		decision := limiter.Allow(c.Request.Context(), identifier)

		if decision.FailOpen {
			logger.Warn("rate limiter unavailable, failing open", zap.String("identifier", identifier))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(decision.RetryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}

		c.Next()
	}
}
