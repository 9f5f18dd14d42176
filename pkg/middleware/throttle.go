package middleware

import (
	"net/http"

	"trading-journal/pkg/ratelimit"

	"github.com/labstack/echo/v4"
)

// NewUserThrottle limits expensive endpoints per authenticated user, falling
// back to the client IP. It must run after the auth middleware.
func NewUserThrottle(store *ratelimit.LimiterStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			if userID, ok := UserID(c); ok {
				key = userID.String()
			}
			if !store.Allow(key) {
				return c.JSON(http.StatusTooManyRequests, Response{
					Code:    http.StatusTooManyRequests,
					Message: "Too many requests: Rate limit exceeded. Please try again later",
				})
			}
			return next(c)
		}
	}
}
