package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/utils"
)

// Fields are merged into the top level of the response body next to "success".
type Fields map[string]interface{}

func body(success bool, message string, fields Fields) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		out[k] = v
	}
	out["success"] = success
	if message != "" {
		out["message"] = message
	}
	return out
}

func Success(c echo.Context, message string, fields Fields) error {
	return c.JSON(http.StatusOK, body(true, message, fields))
}

func Created(c echo.Context, message string, fields Fields) error {
	return c.JSON(http.StatusCreated, body(true, message, fields))
}

// List writes a collection under key together with its count.
func List(c echo.Context, key string, items interface{}, count int) error {
	return c.JSON(http.StatusOK, body(true, "", Fields{
		key:     items,
		"count": count,
	}))
}

// Paginated writes one page of a collection with total, totalPages and currentPage.
func Paginated(c echo.Context, key string, items interface{}, count int, total int64, pagination utils.PaginationParams) error {
	return c.JSON(http.StatusOK, body(true, "", Fields{
		key:           items,
		"count":       count,
		"total":       total,
		"totalPages":  utils.TotalPages(total, pagination.PageSize),
		"currentPage": pagination.Page,
	}))
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, body(false, validationMessage(validationErr), nil))
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Path(), err)
		}
		return c.JSON(appErr.Status, body(false, appErr.Message, nil))
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, body(false, message, nil))
	}

	logger.Error("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, body(false, err.Error(), nil))
}

func validationMessage(validationErr validator.ValidationErrors) string {
	if len(validationErr) == 0 {
		return "Invalid input data"
	}

	err := validationErr[0]
	field := strings.ToLower(err.Field())
	param := err.Param()

	switch err.Tag() {
	case "required":
		return field + " is required"
	case "min", "gte":
		return field + " must be at least " + param
	case "max", "lte":
		return field + " must be at most " + param
	case "oneof":
		return field + " must be one of: " + param
	case "email":
		return field + " must be a valid email address"
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " is invalid"
	}
}
