package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.POST("", orderHandler.CreateOrder)
	orders.GET("/buyer", orderHandler.ListBuyerOrders)
	orders.GET("/seller", orderHandler.ListSellerOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.DELETE("/:id", orderHandler.CancelOrder)
	orders.PUT("/:id/status", orderHandler.UpdateStatus)
}
