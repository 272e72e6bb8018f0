package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/infrastructure/ratelimit"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	authLimiter *ratelimit.RateLimiter,
) {
	SetupAuthRouter(e, authMiddleware, authLimiter)
	SetupProductRouter(e, authMiddleware)
	SetupCartRouter(e, authMiddleware)
	SetupOrderRouter(e, authMiddleware)
	SetupFeedbackRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}

func SetupHealthRouter(e *echo.Echo) {
	e.GET("/health", handler.GetHealthHandler().CheckHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
