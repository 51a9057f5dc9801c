package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showcase/portfolio-api/internal/api/handler"
	"github.com/showcase/portfolio-api/internal/core/domain"
	"github.com/showcase/portfolio-api/internal/core/ports"
)

// Session resolves the session cookie against the store and injects the
// caller's identity into context. Requests without a live session are
// rejected; endpoints that tolerate anonymous callers stay outside this
// middleware.
func Session(store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(handler.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
			}

			data, err := store.Lookup(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
				}
				return err
			}

			c.Set("user_id", data.UserID)
			c.Set("username", data.Username)
			c.Set("role", data.Role)

			return next(c)
		}
	}
}
