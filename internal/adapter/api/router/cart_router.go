package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	cartHandler := handler.GetCartHandler()

	cart := e.Group("/cart")
	cart.Use(authMiddleware.Authenticate)

	cart.GET("", cartHandler.GetCart)
	cart.POST("", cartHandler.AddItem)
	cart.DELETE("", cartHandler.ClearCart)
	cart.POST("/sync", cartHandler.SyncCart)
	cart.PUT("/:itemId", cartHandler.UpdateItem)
	cart.DELETE("/:itemId", cartHandler.RemoveItem)
}
