package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/showcase/portfolio-api/internal/core/domain"
	"github.com/showcase/portfolio-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID uint
	// createErr, when set, is returned by Create after the pre-checks
	// passed — simulates losing a storage-level race.
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	if user.Role == domain.RoleAdmin {
		var admins int64
		for _, u := range r.users {
			if u.Role == domain.RoleAdmin {
				admins++
			}
		}
		if admins >= domain.AdminLimit {
			return nil, domain.ErrAdminLimitReached
		}
	}
	r.nextID++
	clone := *user
	clone.ID = r.nextID
	r.users[clone.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UsernameOrEmailTaken(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, userID uint) error {
	for _, u := range r.users {
		if u.ID == userID {
			now := time.Now().UTC()
			u.LastLogin = &now
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

type stubSessionStore struct {
	sessions map[string]domain.SessionData
	counter  int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.SessionData)}
}

func (s *stubSessionStore) Create(_ context.Context, data domain.SessionData) (string, error) {
	s.counter++
	token := fmt.Sprintf("token-%d", s.counter)
	s.sessions[token] = data
	return token, nil
}

func (s *stubSessionStore) Lookup(_ context.Context, token string) (*domain.SessionData, error) {
	data, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &data, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func newTestAuthService(repo *stubUserRepo, store *stubSessionStore) *AuthService {
	return NewAuthService(repo, store, zerolog.Nop())
}

func register(t *testing.T, svc *AuthService, username, email, password, position, role string) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), registerInput(username, email, password, position, role))
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func registerInput(username, email, password, position, role string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
		Position: position,
		Role:     role,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	user := register(t, svc, "alice_1", "alice@example.com", "longenough1", "developer", "")

	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.PasswordHash == "longenough1" {
		t.Fatalf("password stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough1")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_Register_AccumulatesAllViolations(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	_, err := svc.Register(context.Background(), registerInput("ab", "not-an-email", "short", "", domain.RoleUser))
	if err == nil {
		t.Fatalf("expected validation errors")
	}

	want := domain.ValidationErrors{
		"Invalid username",
		"Invalid email",
		"Password too short",
		"Position required",
	}
	if got := domain.AsValidationErrors(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}
	if len(repo.users) != 0 {
		t.Fatalf("no row must be created on validation failure")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	register(t, svc, "abc", "a@b.com", "longenough1", "dev", domain.RoleUser)

	_, err := svc.Register(context.Background(), registerInput("abc", "other@b.com", "longenough1", "dev", domain.RoleUser))
	want := domain.ValidationErrors{"Username or email already exists"}
	if got := domain.AsValidationErrors(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate registration must not create a row")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	register(t, svc, "abc", "a@b.com", "longenough1", "dev", domain.RoleUser)

	_, err := svc.Register(context.Background(), registerInput("other", "a@b.com", "longenough1", "dev", domain.RoleUser))
	want := domain.ValidationErrors{"Username or email already exists"}
	if got := domain.AsValidationErrors(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}
}

func TestAuthService_Register_AdminLimit(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	for i := 1; i <= domain.AdminLimit; i++ {
		register(t, svc,
			fmt.Sprintf("admin%d", i),
			fmt.Sprintf("admin%d@example.com", i),
			"longenough1", "ops", domain.RoleAdmin)
	}

	_, err := svc.Register(context.Background(), registerInput("admin4", "admin4@example.com", "longenough1", "ops", domain.RoleAdmin))
	want := domain.ValidationErrors{"Admin limit reached"}
	if got := domain.AsValidationErrors(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}

	admins, _ := repo.CountByRole(context.Background(), domain.RoleAdmin)
	if admins != domain.AdminLimit {
		t.Fatalf("store holds %d admins, want %d", admins, domain.AdminLimit)
	}
}

func TestAuthService_Register_StorageRaceReportedAsConflict(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	// Pre-checks see a free username, but the storage layer already lost
	// the race to a concurrent insert.
	repo.createErr = domain.ErrUserExists

	_, err := svc.Register(context.Background(), registerInput("abc", "a@b.com", "longenough1", "dev", domain.RoleUser))
	want := domain.ValidationErrors{"Username or email already exists"}
	if got := domain.AsValidationErrors(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	svc := newTestAuthService(repo, store)

	register(t, svc, "abc", "a@b.com", "longenough1", "dev", domain.RoleUser)

	result, err := svc.Login(context.Background(), "abc", "longenough1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected session token")
	}
	if result.User.Role != domain.RoleUser {
		t.Fatalf("unexpected role %s", result.User.Role)
	}

	data, err := store.Lookup(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if data.Username != "abc" || data.UserID != result.User.ID {
		t.Fatalf("session identity mismatch: %+v", data)
	}

	stored, _ := repo.FindByUsername(context.Background(), "abc")
	if stored.LastLogin == nil {
		t.Fatalf("last_login not updated")
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	register(t, svc, "abc", "a@b.com", "longenough1", "dev", domain.RoleUser)

	_, wrongPass := svc.Login(context.Background(), "abc", "wrongpassword")
	_, noUser := svc.Login(context.Background(), "ghost", "whatever123")

	if wrongPass != domain.ErrInvalidCredentials || noUser != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", wrongPass, noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass.Error(), noUser.Error())
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), newStubSessionStore())

	_, err := svc.Login(context.Background(), "", "")
	want := domain.ValidationErrors{"Username and password required"}
	if got := domain.AsValidationErrors(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}
}

func TestAuthService_CurrentSession(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	svc := newTestAuthService(repo, store)

	// No token at all is a normal logged-out state.
	if data, err := svc.CurrentSession(context.Background(), ""); err != nil || data != nil {
		t.Fatalf("empty token: got %+v, %v", data, err)
	}

	// Unknown token likewise.
	if data, err := svc.CurrentSession(context.Background(), "nope"); err != nil || data != nil {
		t.Fatalf("unknown token: got %+v, %v", data, err)
	}

	register(t, svc, "abc", "a@b.com", "longenough1", "dev", domain.RoleUser)
	result, err := svc.Login(context.Background(), "abc", "longenough1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	data, err := svc.CurrentSession(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("current session: %v", err)
	}
	if data == nil || data.Username != "abc" {
		t.Fatalf("unexpected session data: %+v", data)
	}
}

func TestAuthService_RegistrationLoginFlow(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	svc := newTestAuthService(repo, store)

	// Too-short username is rejected outright.
	_, err := svc.Register(context.Background(), registerInput("ab", "a@b.com", "longenough1", "dev", domain.RoleUser))
	want := domain.ValidationErrors{"Invalid username"}
	if got := domain.AsValidationErrors(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}

	// A valid registration succeeds.
	register(t, svc, "abc", "a@b.com", "longenough1", "dev", domain.RoleUser)

	// The same username again is a duplicate.
	_, err = svc.Register(context.Background(), registerInput("abc", "c@d.com", "longenough1", "dev", domain.RoleUser))
	want = domain.ValidationErrors{"Username or email already exists"}
	if got := domain.AsValidationErrors(err); !reflect.DeepEqual(got, want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}

	// Login establishes a session the verifier immediately sees.
	result, err := svc.Login(context.Background(), "abc", "longenough1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	data, err := svc.CurrentSession(context.Background(), result.Token)
	if err != nil || data == nil {
		t.Fatalf("session check: %+v, %v", data, err)
	}
	if data.Username != "abc" {
		t.Fatalf("session username = %s, want abc", data.Username)
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newStubUserRepo()
	store := newStubSessionStore()
	svc := newTestAuthService(repo, store)

	register(t, svc, "abc", "a@b.com", "longenough1", "dev", domain.RoleUser)
	result, _ := svc.Login(context.Background(), "abc", "longenough1")

	if err := svc.Logout(context.Background(), result.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if data, err := svc.CurrentSession(context.Background(), result.Token); err != nil || data != nil {
		t.Fatalf("session survived logout: %+v, %v", data, err)
	}

	// Logging out twice is harmless.
	if err := svc.Logout(context.Background(), result.Token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}
