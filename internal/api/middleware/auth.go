package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/leadnest/leadnest-api/internal/core/domain"
	"github.com/leadnest/leadnest-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID   = "user_id"
	ContextIdentity = "identity"
)

// Auth extracts the bearer token, resolves it against the auth provider, and
// injects the identity into the request context. A structurally broken or
// already-expired token is rejected locally before the network round trip;
// the provider remains the authority on signature validity. A provider
// rejection is a 401, an unreachable provider a 500.
func Auth(provider ports.AuthProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			token := strings.TrimSpace(parts[1])
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token could not be extracted")
			}

			if err := precheckToken(token); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := provider.UserFromToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "authentication service unavailable")
			}
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token or user not found")
			}

			c.Set(ContextUserID, user.ID)
			c.Set(ContextIdentity, user)

			return next(c)
		}
	}
}

// precheckToken parses the JWT without verifying its signature (the store
// owns the secret) to fail fast on garbage or expired tokens.
func precheckToken(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return err
	}
	if exp != nil && exp.Before(time.Now()) {
		return jwt.ErrTokenExpired
	}
	return nil
}
