package middleware

import (
	"net"
	"net/http"
	"strings"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimit returns a per-IP limiter backed by Redis, intended for the public
// auth routes. Limiter errors fail open: losing Redis must not take logins
// down with it.
func RateLimit(rdb *redis.Client, limit redis_rate.Limit, logger zerolog.Logger) echo.MiddlewareFunc {
	limiter := redis_rate.NewLimiter(rdb)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:ip:" + clientIP(c.Request())

			res, err := limiter.Allow(c.Request().Context(), key, limit)
			if err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("rate limiter error, failing open")
				return next(c)
			}
			if res.Allowed == 0 {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[len(ips)-1])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
