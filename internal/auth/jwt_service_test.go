package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodorder/internal/cache"
	"foodorder/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 0)
	user := &model.User{ID: 42, Email: "a@b.com", Role: model.RoleRestaurantOwner}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, model.RoleRestaurantOwner, claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	identity := claims.Identity()
	assert.Equal(t, uint(42), identity.UserID)
	assert.Equal(t, model.RoleRestaurantOwner, identity.Role)
}

func TestJWTService_RejectsBadTokens(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	user := &model.User{ID: 7, Email: "a@b.com", Role: model.RoleCustomer}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTService("other-secret", time.Hour).GenerateToken(user)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewJWTService("test-secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.GenerateToken(user)
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("unsigned", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 7, Role: model.RoleAdmin})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = svc.ValidateToken(raw)
		assert.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		token, err := svc.GenerateToken(&model.User{ID: 7, Email: "a@b.com", Role: "superuser"})
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestTokenStore_WithoutRedisRefusesToRevoke(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	err := store.Revoke(ctx, "jti-1", time.Hour)
	assert.ErrorIs(t, err, ErrRevocationUnavailable)
	assert.ErrorContains(t, err, "redis not configured")

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.NoError(t, store.Revoke(ctx, "jti-expired", 0))
}

func TestTokenStore_UnreachableRedisFailsClosed(t *testing.T) {
	// Port 1 is reserved; nothing listens there.
	c := cache.New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = c.Close() })
	store := NewTokenStore(c)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.ErrorIs(t, store.Revoke(ctx, "jti-x", time.Hour), ErrRevocationUnavailable)

	_, err := store.IsRevoked(ctx, "jti-x")
	assert.Error(t, err)
}
