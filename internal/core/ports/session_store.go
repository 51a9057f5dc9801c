package ports

import (
	"context"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

// SessionStore manages opaque server-side session tokens. Implementations
// own token generation and expiry; handlers only ever see the token string
// they put in the cookie.
type SessionStore interface {
	// Create stores data under a fresh opaque token and returns it.
	Create(ctx context.Context, data domain.SessionData) (string, error)
	// Lookup resolves a token to its session data. Unknown or expired
	// tokens return domain.ErrSessionNotFound.
	Lookup(ctx context.Context, token string) (*domain.SessionData, error)
	// Destroy removes the token. Destroying an unknown token is not an
	// error.
	Destroy(ctx context.Context, token string) error
}
