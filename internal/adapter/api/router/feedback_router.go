package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

func SetupFeedbackRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	feedbackHandler := handler.GetFeedbackHandler()

	feedback := e.Group("/feedback")
	feedback.POST("", feedbackHandler.SubmitFeedback, authMiddleware.OptionalAuth)
	feedback.GET("", feedbackHandler.ListFeedback, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	feedback.GET("/recent", feedbackHandler.RecentFeedback)
	feedback.GET("/my-feedback", feedbackHandler.ListMyFeedback, authMiddleware.Authenticate)
	feedback.PUT("/:id", feedbackHandler.UpdateStatus, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
	feedback.DELETE("/:id", feedbackHandler.DeleteFeedback, authMiddleware.Authenticate)
}
