package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/showcase/portfolio-api/internal/core/domain"
	"github.com/showcase/portfolio-api/internal/core/ports"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,}$`)

// AuthService implements registration, login, and session verification.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, logger zerolog.Logger) *AuthService {
	v := validator.New()
	// 3+ characters, alphanumeric or underscore only.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return &AuthService{users: users, sessions: sessions, validate: v, logger: logger}
}

// registerChecks mirrors RegisterInput with the field-level rules attached.
type registerChecks struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"min=8"`
	Position string `validate:"required"`
	Role     string `validate:"oneof=user admin"`
}

// registerFieldError maps a single violation to its canonical user-facing
// message. Messages match what the client renders inline.
func registerFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		return "Invalid username"
	case "Email":
		return "Invalid email"
	case "Password":
		return "Password too short"
	case "Position":
		return "Position required"
	case "Role":
		return "Invalid role"
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}

// Register validates the submission, accumulating every violation before
// deciding, and inserts the account only when the list is empty. Uniqueness
// and the admin quota are re-enforced atomically by the repository, so a
// concurrent duplicate surfaces as the same conflict message.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	var violations domain.ValidationErrors

	checks := registerChecks{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Position: in.Position,
		Role:     in.Role,
	}
	if err := s.validate.Struct(checks); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("register: validate: %w", err)
		}
		for _, fe := range ve {
			violations = append(violations, registerFieldError(fe))
		}
	}

	if in.Role == domain.RoleAdmin {
		count, err := s.users.CountByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("register: count admins: %w", err)
		}
		if count >= domain.AdminLimit {
			violations = append(violations, "Admin limit reached")
		}
	}

	taken, err := s.users.UsernameOrEmailTaken(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: uniqueness check: %w", err)
	}
	if taken {
		violations = append(violations, "Username or email already exists")
	}

	if len(violations) > 0 {
		return nil, violations
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Position:     in.Position,
		Role:         in.Role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// The storage layer lost a race we pre-checked; report it the
		// same way the pre-check would have.
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return nil, domain.ValidationErrors{"Username or email already exists"}
		case errors.Is(err, domain.ErrAdminLimitReached):
			return nil, domain.ValidationErrors{"Admin limit reached"}
		}
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	s.logger.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and establishes a session. An unknown username
// and a wrong password produce the same error so callers cannot enumerate
// accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ValidationErrors{"Username and password required"}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, domain.SessionData{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("login: create session: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login already succeeded; a stale last_login is not worth
		// failing the request over.
		s.logger.Warn().Err(err).Str("username", user.Username).Msg("failed to update last_login")
	}

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")
	return &ports.LoginResult{Token: token, User: user}, nil
}

// CurrentSession resolves a session token. Missing or unknown tokens are a
// normal logged-out state, not an error.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*domain.SessionData, error) {
	if token == "" {
		return nil, nil
	}
	data, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	return data, nil
}

// Logout destroys the session bound to token. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ListUsers returns all accounts for the admin dashboard.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
