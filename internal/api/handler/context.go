package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the opaque session token. One
// session per browser context: a new login overwrites the cookie.
const SessionCookieName = "session_token"

// sessionToken extracts the session token from the request cookie. A missing
// cookie is a normal logged-out state and yields the empty string.
func sessionToken(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
