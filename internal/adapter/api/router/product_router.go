package router

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"
)

func SetupProductRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()

	products := e.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.POST("", productHandler.CreateProduct, authMiddleware.Authenticate)

	// Before /:id so it is not read as a product id.
	products.GET("/my-listings", productHandler.ListMyProducts, authMiddleware.Authenticate)

	products.GET("/:id", productHandler.GetProduct)
	products.PUT("/:id", productHandler.UpdateProduct, authMiddleware.Authenticate)
	products.DELETE("/:id", productHandler.DeleteProduct, authMiddleware.Authenticate)
}
