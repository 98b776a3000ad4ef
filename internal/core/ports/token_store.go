package ports

import (
	"context"
	"time"
)

// TokenStore tracks the set of active bearer tokens by their token id (jti).
// A token is valid only while its id is present in the store; revoking one
// token leaves the user's other sessions untouched.
type TokenStore interface {
	Save(ctx context.Context, jti string, userID int64, ttl time.Duration) error
	Exists(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string) error
}
