package handler

import (
	"campusmarket/internal/usecase"
)

var (
	authHandler     *AuthHandler
	userHandler     *UserHandler
	productHandler  *ProductHandler
	cartHandler     *CartHandler
	orderHandler    *OrderHandler
	feedbackHandler *FeedbackHandler
	healthHandler   *HealthHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	productUseCase *usecase.ProductUseCase,
	cartUseCase *usecase.CartUseCase,
	orderUseCase *usecase.OrderUseCase,
	feedbackUseCase *usecase.FeedbackUseCase,
	uploader *ImageUploader,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	productHandler = NewProductHandler(productUseCase, uploader)
	cartHandler = NewCartHandler(cartUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	feedbackHandler = NewFeedbackHandler(feedbackUseCase)
	healthHandler = NewHealthHandler()
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetFeedbackHandler() *FeedbackHandler {
	return feedbackHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
