package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// Identity resolves the calling user from the X-User-Id header and
// stores it in the context under "user_id" as uint64. The header is
// required: requests without it are rejected with 401. When
// devDefaultUser is set (local development only) a missing header
// falls back to user 1, mirroring the old trusted-network behavior.
func Identity(devDefaultUser bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get("X-User-Id"))
			if raw == "" {
				if devDefaultUser {
					c.Set("user_id", uint64(1))
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing X-User-Id header"})
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid X-User-Id header"})
			}
			c.Set("user_id", id)
			return next(c)
		}
	}
}

// requestUserID returns the identity resolved by Identity, or "anon"
// when the middleware did not run (e.g. health checks). Used for cache
// and rate-limit key construction.
func requestUserID(c echo.Context) string {
	if v, ok := c.Get("user_id").(uint64); ok {
		return strconv.FormatUint(v, 10)
	}
	if raw := strings.TrimSpace(c.Request().Header.Get("X-User-Id")); raw != "" {
		return raw
	}
	return "anon"
}
