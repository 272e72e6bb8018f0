package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
	"campusmarket/pkg/response"
)

const (
	ContextUserID = "uid"
	ContextRole   = "role"
)

// TokenVerifier resolves a bearer token to a user ID.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			logger.Debug("Token verification failed: %v", err)
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set(ContextUserID, uid)
		return next(c)
	}
}

// OptionalAuth sets uid when a valid bearer token is present and lets the request through either way.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get("Authorization"))
		if !ok {
			return next(c)
		}

		if uid, err := m.verifier.VerifyToken(c.Request().Context(), token); err == nil {
			c.Set(ContextUserID, uid)
		}
		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// UserID is the authenticated caller, empty on public routes without a token.
func UserID(c echo.Context) string {
	uid, _ := c.Get(ContextUserID).(string)
	return uid
}

func Role(c echo.Context) string {
	role, _ := c.Get(ContextRole).(string)
	return role
}
