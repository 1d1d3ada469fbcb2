package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// PublicRateLimit throttles the unauthenticated token endpoints per client IP
// (fixed one-minute window in redis). Tokens are unguessable, but there is no
// reason to let anyone enumerate them at line rate. A nil client or a redis
// outage fails open: availability of the approval flow wins.
func PublicRateLimit(rdb *redis.Client, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || perMinute <= 0 {
			c.Next()
			return
		}

		window := time.Now().UTC().Unix() / 60
		key := fmt.Sprintf("rl:public:%s:%d", c.ClientIP(), window)

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logrus.WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limited"})
			return
		}

		c.Next()
	}
}
