package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"campusmarket/pkg/logger"
)

func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			}
			if uid := UserID(c); uid != "" {
				fields = append(fields, zap.String("uid", uid))
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}

			logger.L().Info("request", fields...)
			return err
		}
	}
}
