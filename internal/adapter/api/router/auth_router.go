package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/infrastructure/ratelimit"
)

// SetupAuthRouter registers account routes. Register and login are throttled per client IP.
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()
	userHandler := handler.GetUserHandler()

	var throttle []echo.MiddlewareFunc
	if limiter != nil {
		throttle = append(throttle, middleware.RateLimit(limiter))
	}
	e.POST("/auth/register", authHandler.Register, throttle...)
	e.POST("/auth/login", authHandler.Login, throttle...)

	protected := e.Group("/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("/me", authHandler.Me)
	protected.PUT("/update-profile", userHandler.UpdateProfile)
	protected.PUT("/update-password", userHandler.UpdatePassword)
}
