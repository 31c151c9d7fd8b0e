package utils

import (
	"context"
	"testing"
	"time"

	"donation_system/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleAdmin, FoundationID: "foundation-1"}
	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "foundation-1", claims.FoundationID)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
}

func TestParseJWTRejects(t *testing.T) {
	user := &domain.User{ID: "user-1", Role: domain.RoleUser, FoundationID: "foundation-1"}

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noTenant, err := GenerateJWT(&domain.User{ID: "user-1", Role: domain.RoleUser}, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(noTenant, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)

	// No exp claim
	bare := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1", FoundationID: "foundation-1"})
	signed, err := bare.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseJWT(signed, "secret")
	assert.Error(t, err)

	// Other algorithms are refused even with the right key
	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:           "user-1",
		FoundationID:     "foundation-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err = hs512.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseJWT(signed, "secret")
	assert.Error(t, err)
}

func TestCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	var n int64
	found, err := GetCache(ctx, rdb, "missing", &n)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, DonorCountKey("f1"), 7, time.Minute))
	assert.Equal(t, "donors:count:foundation:f1", DonorCountKey("f1"))
	assert.Equal(t, time.Minute, mr.TTL(DonorCountKey("f1")))

	found, err = GetCache(ctx, rdb, DonorCountKey("f1"), &n)
	require.NoError(t, err)
	assert.True(t, found)
	assert.EqualValues(t, 7, n)

	require.NoError(t, DeleteCache(ctx, rdb, DonorCountKey("f1"), DonationCountKey("f1")))
	assert.False(t, mr.Exists(DonorCountKey("f1")))
}

func TestCacheDisabledWithoutClient(t *testing.T) {
	ctx := context.Background()
	var n int64

	found, err := GetCache(ctx, nil, "k", &n)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, "k", 1, time.Minute))
	assert.NoError(t, DeleteCache(ctx, nil, "k"))
}
