package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

// errorResponse is the canonical error envelope: success=false plus the full
// list of messages the client renders inline.
type errorResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "errors": [...]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msgs := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Success: false, Errors: msgs})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, []string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, []string{fmt.Sprintf("%v", he.Message)}
	}

	// Accumulated field violations keep their full message list.
	var ve domain.ValidationErrors
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, []string{"Invalid credentials"}
	case errors.Is(err, domain.ErrInvalidRating):
		return http.StatusBadRequest, []string{domain.ErrInvalidRating.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, []string{"access forbidden"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, []string{"user not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, []string{domain.ErrUserExists.Error()}
	}

	// Unexpected error (storage failure and the like): log the real
	// cause, return a generic message, keep serving other requests.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, []string{"internal server error"}
}
