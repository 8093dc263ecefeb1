package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodorder/internal/cache"
)

const revokedKeyPrefix = "revoked:"

// ErrRevocationUnavailable is returned by Revoke when the token could not be
// recorded as revoked.
var ErrRevocationUnavailable = errors.New("token revocation unavailable")

// Revoker records and looks up revoked token IDs.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked jti values in Redis until the token would have
// expired anyway. Without Redis nothing can be revoked and Revoke fails.
type TokenStore struct {
	cache *cache.Client
}

var _ Revoker = (*TokenStore)(nil)

// NewTokenStore creates a revocation list backed by c.
func NewTokenStore(c *cache.Client) *TokenStore {
	return &TokenStore{cache: c}
}

// Revoke marks tokenID unusable for ttl. Already expired tokens are skipped.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revokedKeyPrefix+tokenID, []byte{1}, ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrRevocationUnavailable, err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked. A Redis failure is returned
// rather than read as "not revoked".
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, revokedKeyPrefix+tokenID)
}
