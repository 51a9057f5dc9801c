package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/showcase/portfolio-api/internal/core/domain"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps opaque session tokens in Redis.
// Key format: session:<uuid>, value: JSON-encoded SessionData, expiring
// after the configured TTL so abandoned sessions clean themselves up.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create stores data under a fresh opaque token and returns the token.
func (s *SessionStore) Create(ctx context.Context, data domain.SessionData) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Lookup resolves a token. Unknown or expired tokens yield
// domain.ErrSessionNotFound.
func (s *SessionStore) Lookup(ctx context.Context, token string) (*domain.SessionData, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var data domain.SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

// Destroy removes the token. Removing an unknown token is not an error.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
