package middleware

import (
	"net/http"

	"bantuin/internal/infrastructure/ratelimit"
	"bantuin/pkg/logger"

	"github.com/labstack/echo/v4"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles an authenticated user for the named action. It must run
// after Authenticate, since the bucket key is the caller's uid.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			allowed, retryAfter := m.limiter.Allow(uid, action)
			if !allowed {
				logger.Warn("Rate limit hit for user %s on %s", uid, action)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(retryAfter.Seconds()),
				})
			}

			return next(c)
		}
	}
}
