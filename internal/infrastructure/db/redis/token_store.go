package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the allowlist of active bearer tokens in Redis.
// Key format: token:<jti> → user id, expiring with the token itself, so
// revoked and expired sessions both disappear from the store.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Save allowlists a freshly issued token.
func (s *TokenStore) Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(jti), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Exists reports whether the token is still active.
func (s *TokenStore) Exists(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return n > 0, nil
}

// Revoke invalidates exactly this token. Other sessions of the same user are
// untouched. Revoking an unknown token is a no-op.
func (s *TokenStore) Revoke(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, s.key(jti)).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *TokenStore) key(jti string) string {
	return "token:" + jti
}
