package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadnest/leadnest-api/internal/api/middleware"
	"github.com/leadnest/leadnest-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call when it is absent: a missing identity
// means the middleware did not run on this route.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	user, _ := c.Get(middleware.ContextIdentity).(*domain.Identity)
	if user == nil || user.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
