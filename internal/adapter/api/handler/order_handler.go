package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/domain/entity"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type createOrderRequest struct {
	Items []struct {
		ProductID string `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity"`
	} `json:"items" validate:"dive"`
	MeetingDetails struct {
		Location string `json:"location"`
		Date     string `json:"date"`
		TimeSlot string `json:"time_slot"`
		Notes    string `json:"notes" validate:"max=500"`
	} `json:"meeting_details"`
	PaymentMethod string `json:"payment_method"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// meetingDateLayouts are tried in order; clients send either a full timestamp or a calendar date.
var meetingDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	date, err := parseMeetingDate(req.MeetingDetails.Date)
	if err != nil {
		return response.Error(c, err)
	}

	items := make([]usecase.CheckoutItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.CheckoutItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	orders, err := h.orderUseCase.Checkout(c.Request().Context(), middleware.UserID(c), usecase.CheckoutInput{
		Items: items,
		MeetingDetails: entity.MeetingDetails{
			Location: req.MeetingDetails.Location,
			Date:     date,
			TimeSlot: req.MeetingDetails.TimeSlot,
			Notes:    req.MeetingDetails.Notes,
		},
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Orders created successfully", response.Fields{"orders": orders})
}

func (h *OrderHandler) ListBuyerOrders(c echo.Context) error {
	orders, err := h.orderUseCase.ListForBuyer(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, "orders", orders, len(orders))
}

func (h *OrderHandler) ListSellerOrders(c echo.Context) error {
	orders, err := h.orderUseCase.ListForSeller(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, "orders", orders, len(orders))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orderUseCase.GetOrder(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "", response.Fields{"order": order})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	order, err := h.orderUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), middleware.UserID(c), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Order status updated", response.Fields{"order": order})
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	order, err := h.orderUseCase.Cancel(c.Request().Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Order cancelled", response.Fields{"order": order})
}

// parseMeetingDate leaves an empty date as the zero time so the usecase reports it as missing.
func parseMeetingDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}

	for _, layout := range meetingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.BadRequest("Please provide a valid meeting date", nil)
}
