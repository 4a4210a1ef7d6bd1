package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func TestTokenService_ExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewTokenService("secret", 30*time.Minute).WithClock(clock.Now)

	token, expiresAt, err := svc.Issue(7)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(30*time.Minute), expiresAt)

	clock.now = clock.now.Add(29 * time.Minute)
	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.True(t, IsExpired(err))
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	other, _, err := NewTokenService("other-secret", time.Hour).Issue(7)
	require.NoError(t, err)
	_, err = svc.Verify(other)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 7}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noExp)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_RemainingLifetime(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewTokenService("secret", 30*time.Minute).WithClock(clock.Now)

	token, _, err := svc.Issue(1)
	require.NoError(t, err)

	clock.now = clock.now.Add(10*time.Minute + 15*time.Second)
	left, err := svc.RemainingLifetime(token)
	require.NoError(t, err)
	assert.Equal(t, 19*time.Minute+45*time.Second, left)

	clock.now = clock.now.Add(20 * time.Minute)
	left, err = svc.RemainingLifetime(token)
	require.NoError(t, err)
	assert.Equal(t, -15*time.Second, left)
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewTokenService("secret", 0).TTL())
}
