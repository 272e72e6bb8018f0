package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
}

func NewCartHandler(cartUseCase *usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type syncCartRequest struct {
	Items []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	cart, err := h.cartUseCase.GetCart(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "", response.Fields{"cart": cart})
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.cartUseCase.AddItem(c.Request().Context(), middleware.UserID(c), req.ProductID, quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Product added to cart", response.Fields{"cart": cart})
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	cart, err := h.cartUseCase.UpdateItemQuantity(c.Request().Context(), middleware.UserID(c), c.Param("itemId"), req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Cart updated", response.Fields{"cart": cart})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	cart, err := h.cartUseCase.RemoveItem(c.Request().Context(), middleware.UserID(c), c.Param("itemId"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Item removed from cart", response.Fields{"cart": cart})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	cart, err := h.cartUseCase.ClearCart(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Cart cleared", response.Fields{"cart": cart})
}

// SyncCart merges a client-side cart into the stored one.
func (h *CartHandler) SyncCart(c echo.Context) error {
	var req syncCartRequest
	if err := c.Bind(&req); err != nil || req.Items == nil {
		return response.Error(c, errors.BadRequest("Invalid cart data", err))
	}

	items := make([]usecase.SyncItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.SyncItemInput{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	cart, err := h.cartUseCase.SyncCart(c.Request().Context(), middleware.UserID(c), items)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Cart synced successfully", response.Fields{"cart": cart})
}
