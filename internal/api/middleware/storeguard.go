package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireStore rejects requests with a configuration error when the store
// client could not be built at startup (missing URL or service key). The
// process stays up; only store-backed routes answer 500.
func RequireStore(initialized bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !initialized {
				return echo.NewHTTPError(http.StatusInternalServerError,
					"Server configuration error: store client not initialized.")
			}
			return next(c)
		}
	}
}
