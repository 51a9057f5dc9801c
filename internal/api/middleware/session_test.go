package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/showcase/portfolio-api/internal/api/handler"
	"github.com/showcase/portfolio-api/internal/core/domain"
)

type stubStore struct {
	sessions map[string]domain.SessionData
}

func (s *stubStore) Create(_ context.Context, data domain.SessionData) (string, error) {
	return "", nil
}

func (s *stubStore) Lookup(_ context.Context, token string) (*domain.SessionData, error) {
	data, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &data, nil
}

func (s *stubStore) Destroy(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func TestSession_MissingCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(&stubStore{sessions: map[string]domain.SessionData{}})
	h := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSession_UnknownToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(&stubStore{sessions: map[string]domain.SessionData{}})
	h := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSession_InjectsIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: handler.SessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	store := &stubStore{sessions: map[string]domain.SessionData{
		"tok-1": {UserID: 7, Username: "abc", Role: domain.RoleAdmin},
	}}

	called := false
	mw := Session(store)
	h := mw(func(c echo.Context) error {
		called = true
		if c.Get("user_id") != uint(7) || c.Get("username") != "abc" || c.Get("role") != domain.RoleAdmin {
			t.Fatalf("identity not injected: %v %v %v", c.Get("user_id"), c.Get("username"), c.Get("role"))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}
