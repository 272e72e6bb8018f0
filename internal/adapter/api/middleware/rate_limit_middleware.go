package middleware

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/infrastructure/ratelimit"
	"campusmarket/pkg/logger"
)

// RateLimit throttles requests per client IP.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, retryAfter := limiter.Allow(ip)
			if !allowed {
				logger.Warn("Rate limit exceeded for %s on %s", ip, c.Path())
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"success":     false,
					"message":     "Too many requests, please try again later",
					"retry_after": int(math.Ceil(retryAfter.Seconds())),
				})
			}

			return next(c)
		}
	}
}
