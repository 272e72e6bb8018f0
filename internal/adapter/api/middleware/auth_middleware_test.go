package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/pkg/errors"
)

type stubVerifier map[string]string

func (v stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := v[token]
	if !ok {
		return "", errors.Unauthorized("bad token", nil)
	}
	return uid, nil
}

func echoUID(c echo.Context) error {
	return c.String(http.StatusOK, UserID(c))
}

func serve(t *testing.T, mw echo.MiddlewareFunc, header string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mw(echoUID)(c))
	return rec
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestAuthenticate(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{"good": "user-1"})

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid authorization format"},
		{"empty token", "Bearer  ", http.StatusUnauthorized, "Invalid authorization format"},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, "Invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, m.Authenticate, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, messageOf(t, rec))
		})
	}

	t.Run("valid token", func(t *testing.T) {
		rec := serve(t, m.Authenticate, "Bearer good")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("scheme is case insensitive", func(t *testing.T) {
		rec := serve(t, m.Authenticate, "bearer good")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{"good": "user-1"})

	rec := serve(t, m.OptionalAuth, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(t, m.OptionalAuth, "Bearer nope")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = serve(t, m.OptionalAuth, "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}
