package handler

import (
	"github.com/labstack/echo/v4"

	"campusmarket/internal/adapter/api/middleware"
	"campusmarket/internal/usecase"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/response"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Name       string `json:"name" validate:"omitempty,max=50"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	University string `json:"university" validate:"omitempty,max=100"`
	Avatar     string `json:"avatar" validate:"omitempty,url"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), middleware.UserID(c), usecase.UpdateProfileInput{
		Name:       req.Name,
		Phone:      req.Phone,
		University: req.University,
		Avatar:     req.Avatar,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, "Profile updated successfully", response.Fields{"user": user})
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := middleware.UserID(c)
	if err := h.userUseCase.UpdatePassword(c.Request().Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	logger.Info("Password updated for user %s", uid)
	return response.Success(c, "Password updated successfully", nil)
}
