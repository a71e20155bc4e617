package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
)

const rateLimitWindow = time.Minute

// RateLimit gates request admission per client identity (IP plus user id when
// authenticated) with a fixed one-minute window backed by Redis. The limiter
// fails open: a missing or unreachable Redis never blocks traffic.
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.RateLimitEnabled {
			c.Next()
			return
		}

		rdb := config.GetRedis()
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s|%s", c.ClientIP(), clientIdentity(c))
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("Rate limit counter error, allowing request: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
				log.Printf("Rate limit expire error: %v", err)
			}
		}

		limit := int64(cfg.RateLimitPerMinute)
		if count > limit {
			retryAfter := int(rateLimitWindow.Seconds())
			if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				retryAfter = int(ttl.Seconds())
			}

			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     fmt.Sprintf("Too many requests. Please try again in %d seconds.", retryAfter),
				"error":       "RATE_LIMIT_EXCEEDED",
				"retry_after": retryAfter,
			})
			return
		}

		remaining := limit - count
		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Next()
	}
}

// clientIdentity returns the authenticated user id, or "guest" on
// pre-authentication endpoints
func clientIdentity(c *gin.Context) string {
	if id := CurrentUserID(c); id != nil {
		return fmt.Sprintf("%d", *id)
	}
	return "guest"
}
