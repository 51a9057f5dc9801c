package ports

import (
	"context"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

// UserRepository defines persistence operations for registered accounts.
//
// Create must enforce the username/email uniqueness and the admin quota
// atomically at the storage layer; a prior read in the service is only used
// to build a friendly error list and never trusted against races.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// UsernameOrEmailTaken reports whether either value is already
	// registered (single combined check).
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
	// CountByRole returns how many users currently hold role.
	CountByRole(ctx context.Context, role string) (int64, error)
	// UpdateLastLogin stamps the user's last successful login.
	UpdateLastLogin(ctx context.Context, userID uint) error
	// List returns all users ordered by id, without password hashes.
	List(ctx context.Context) ([]*domain.User, error)
}
