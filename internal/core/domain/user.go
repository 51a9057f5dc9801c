package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AdminLimit is the maximum number of users that may hold the admin role.
const AdminLimit = 3

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("username or email already exists")
var ErrAdminLimitReached = errors.New("admin limit reached")
var ErrUserNotFound = errors.New("user not found")
var ErrSessionNotFound = errors.New("session not found")
var ErrForbidden = errors.New("access forbidden")

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User models a registered account.
type User struct {
	ID           uint       `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Position     string     `json:"position"`
	Role         string     `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// ValidationErrors accumulates every field-level violation found in a single
// request. A response built from it never reflects a partial mutation.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// AsValidationErrors unwraps err into a ValidationErrors list. Any other
// error becomes a single-element list so callers always have messages to
// render.
func AsValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return ValidationErrors{err.Error()}
}
