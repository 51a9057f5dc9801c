package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/showcase/portfolio-api/internal/api/metrics"
	"github.com/showcase/portfolio-api/internal/core/domain"
	"github.com/showcase/portfolio-api/internal/core/ports"
)

// invalidCredentialsMessage is rendered for every login failure, whether the
// username is unknown or the password is wrong, so the two cases are
// indistinguishable on the wire.
const invalidCredentialsMessage = "Invalid credentials"

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  authResponse
// @Failure      500   {object}  authResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{Success: false, Errors: []string{"invalid payload"}})
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Position: req.Position,
		Role:     req.Role,
	})
	if err != nil {
		var ve domain.ValidationErrors
		if errors.As(err, &ve) {
			metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, authResponse{Success: false, Errors: ve})
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, authResponse{Success: true, Message: "Registration successful"})
}

// Login verifies credentials and establishes a session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200       {object}  authResponse
// @Failure      401       {object}  authResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, authResponse{Success: false, Errors: []string{"invalid payload"}})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnauthorized, authResponse{Success: false, Errors: []string{invalidCredentialsMessage}})
		}
		var ve domain.ValidationErrors
		if errors.As(err, &ve) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusBadRequest, authResponse{Success: false, Errors: ve})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	setSessionCookie(c, result.Token)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Success: true, Message: "Login successful", Role: result.User.Role})
}

// Session reports the caller's current session identity. Safe to call
// logged out: it answers logged_in=false, never an error.
//
// @Summary      Check the current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	data, err := h.authService.CurrentSession(c.Request().Context(), sessionToken(c))
	if err != nil {
		return err
	}
	if data == nil {
		return c.JSON(http.StatusOK, sessionResponse{LoggedIn: false})
	}
	return c.JSON(http.StatusOK, sessionResponse{
		LoggedIn: true,
		UserID:   data.UserID,
		Username: data.Username,
		Role:     data.Role,
	})
}

// Logout destroys the current session and expires the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := sessionToken(c)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	if token != "" {
		metrics.SessionsDestroyedTotal.Inc()
	}
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, authResponse{Success: true, Message: "Logged out"})
}

// ListUsers returns account summaries for the admin dashboard. The route is
// guarded by the session and RBAC middleware.
//
// @Summary      List registered users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  authResponse
// @Failure      403  {object}  authResponse
// @Router       /admin/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := listUsersResponse{Users: make([]userSummary, 0, len(users))}
	for _, u := range users {
		summary := userSummary{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Position: u.Position,
			Role:     u.Role,
		}
		if u.LastLogin != nil {
			summary.LastLogin = u.LastLogin.UTC().Format("2006-01-02T15:04:05Z")
		}
		resp.Users = append(resp.Users, summary)
	}
	return c.JSON(http.StatusOK, resp)
}
