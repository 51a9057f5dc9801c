package ports

import (
	"context"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

// RegisterInput carries a registration submission. Role defaults to "user"
// when empty.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Position string
	Role     string
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token string
	User  *domain.User
}

// AuthService defines the authentication use cases.
type AuthService interface {
	// Register validates input, accumulating every violation into a
	// domain.ValidationErrors, and creates the account only when the
	// list is empty.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies credentials, establishes a session, and updates
	// last_login. Unknown usernames and wrong passwords are
	// indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// CurrentSession resolves a session token; a missing or unknown
	// token yields (nil, nil), never an error.
	CurrentSession(ctx context.Context, token string) (*domain.SessionData, error)
	// Logout destroys the session bound to token.
	Logout(ctx context.Context, token string) error
	// ListUsers returns account summaries for the admin dashboard.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
