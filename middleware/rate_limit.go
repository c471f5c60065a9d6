package middleware

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/NomadCrew/nomad-crew-itinerary/errors"
	"github.com/NomadCrew/nomad-crew-itinerary/logger"
	"github.com/NomadCrew/nomad-crew-itinerary/services"
	"github.com/gin-gonic/gin"
)

// GenerateRateLimiter bounds generation requests per client IP with a fixed
// window. Limiter failures let the request through.
func GenerateRateLimiter(limiter services.RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	log := logger.GetLogger().Named("rate_limit")
	limitHeader := strconv.Itoa(limit)

	return func(c *gin.Context) {
		ip := getClientIP(c)

		res, err := limiter.CheckLimit(c.Request.Context(), "generate:"+ip, limit, window)
		if err != nil {
			log.Warnw("Rate limit check failed, allowing request", "ip", ip, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", limitHeader)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			retry := int(res.RetryAfter.Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.RetryAfter).Unix(), 10))
			log.Infow("Generation rate limit exceeded", "ip", ip, "retryAfter", retry)
			_ = c.Error(apperrors.RateLimitExceeded("Too many generation requests. Please try again later.", retry))
			c.Abort()
			return
		}

		c.Next()
	}
}

// getClientIP prefers proxy headers over the socket address.
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}
