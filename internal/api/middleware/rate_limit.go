package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EngOsamaQazan/Archeef/pkg/redis"
	"github.com/EngOsamaQazan/Archeef/pkg/response"
)

// RateLimit limits requests per client IP and route over a fixed window.
// When rdb is nil, or Redis errors, requests pass through.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "محاولات كثيرة، حاول لاحقاً")
			c.Abort()
			return
		}

		c.Next()
	}
}
