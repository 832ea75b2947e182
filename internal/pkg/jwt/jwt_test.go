package jwt

import (
	"testing"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDriver() *domain.Driver {
	return &domain.Driver{ID: uuid.New(), Username: "johndoe"}
}

func TestTokenService_RoundTrip(t *testing.T) {
	ts := NewTokenService("secret", time.Minute, time.Hour)
	driver := testDriver()
	sid := uuid.New()

	pair, err := ts.GenerateTokenPair(driver, sid)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.ExpiresAt))

	claims, err := ts.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, driver.ID, claims.DriverID)
	assert.Equal(t, "johndoe", claims.Username)
	assert.Equal(t, sid, claims.SessionID)

	refresh, err := ts.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, sid, refresh.SessionID)
}

func TestTokenService_TokenTypeMismatch(t *testing.T) {
	ts := NewTokenService("secret", time.Minute, time.Hour)
	pair, err := ts.GenerateTokenPair(testDriver(), uuid.New())
	require.NoError(t, err)

	_, err = ts.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = ts.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_Expired(t *testing.T) {
	ts := NewTokenService("secret", -time.Minute, time.Hour)
	pair, err := ts.GenerateTokenPair(testDriver(), uuid.New())
	require.NoError(t, err)

	_, err = ts.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	pair, err := NewTokenService("secret", time.Minute, time.Hour).GenerateTokenPair(testDriver(), uuid.New())
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Minute, time.Hour).ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestHashToken(t *testing.T) {
	a := HashToken("token")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashToken("token"))
	assert.NotEqual(t, a, HashToken("other"))
}
