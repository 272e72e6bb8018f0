package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/response"
)

type FeedbackHandler struct {
	feedbackUseCase *usecase.FeedbackUseCase
}

func NewFeedbackHandler(feedbackUseCase *usecase.FeedbackUseCase) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUseCase: feedbackUseCase,
	}
}

type submitFeedbackRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Rating      int    `json:"rating" validate:"min=1,max=5"`
	Category    string `json:"category" validate:"required,oneof='User Experience' Features Performance Support Other"`
	Subject     string `json:"subject" validate:"required"`
	Message     string `json:"message" validate:"required,min=10"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type updateFeedbackStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Reviewed Resolved"`
}

// SubmitFeedback is public; the submitter is attached when the request carries a valid token.
func (h *FeedbackHandler) SubmitFeedback(c echo.Context) error {
	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	feedback, err := h.feedbackUseCase.Submit(c.Request().Context(), middleware.UserID(c), usecase.SubmitFeedbackInput{
		Name:        req.Name,
		Email:       req.Email,
		Rating:      req.Rating,
		Category:    req.Category,
		Subject:     req.Subject,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, "Thank you for your feedback!", response.Fields{"feedback": feedback})
}

func (h *FeedbackHandler) ListFeedback(c echo.Context) error {
	feedback, err := h.feedbackUseCase.ListAll(c.Request().Context(), principal(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, "feedback", feedback, len(feedback))
}

func (h *FeedbackHandler) ListMyFeedback(c echo.Context) error {
	feedback, err := h.feedbackUseCase.ListMine(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, "feedback", feedback, len(feedback))
}

func (h *FeedbackHandler) RecentFeedback(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	feedback, err := h.feedbackUseCase.RecentPositive(c.Request().Context(), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.List(c, "feedback", feedback, len(feedback))
}

func (h *FeedbackHandler) UpdateStatus(c echo.Context) error {
	var req updateFeedbackStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	feedback, err := h.feedbackUseCase.UpdateStatus(c.Request().Context(), principal(c), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Feedback status updated", response.Fields{"feedback": feedback})
}

func (h *FeedbackHandler) DeleteFeedback(c echo.Context) error {
	if err := h.feedbackUseCase.Delete(c.Request().Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Feedback deleted successfully", nil)
}

func principal(c echo.Context) usecase.Principal {
	return usecase.Principal{UserID: middleware.UserID(c), Role: middleware.Role(c)}
}
