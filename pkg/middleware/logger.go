package middleware

import (
	"time"

	"trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// NewRequestLogger attaches a request-scoped logger to the request context and
// logs one line per request once the handler returns.
func NewRequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = req.Header.Get(echo.HeaderXRequestID)
			}
			reqLog := log.With(
				logger.StringField("request_id", requestID),
				logger.StringField("method", req.Method),
				logger.StringField("path", c.Path()),
			)
			c.SetRequest(req.WithContext(logger.NewContext(req.Context(), reqLog)))

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			// handlers further down may have enriched the request logger
			reqLog = log.FromContext(c.Request().Context())
			fields := []zap.Field{
				logger.IntField("status", c.Response().Status),
				logger.Field("latency", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, logger.ErrorField(err))
			}
			if c.Response().Status >= 500 {
				reqLog.Error("Request failed", fields...)
			} else {
				reqLog.Info("Request handled", fields...)
			}
			return nil
		}
	}
}
