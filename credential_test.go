package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestCredentialTTLFromExpClaim(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{
		"sub": "u1",
		"exp": now.Add(30 * time.Minute).Unix(),
	})

	assert.Equal(t, 30*time.Minute, credentialTTL(token, now))
}

func TestCredentialTTLExpiredToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := signedToken(t, jwt.MapClaims{
		"sub": "u1",
		"exp": now.Add(-time.Minute).Unix(),
	})

	assert.Zero(t, credentialTTL(token, now))
}

func TestCredentialTTLWithoutExpiry(t *testing.T) {
	now := time.Now()
	token := signedToken(t, jwt.MapClaims{"sub": "u1"})

	assert.Zero(t, credentialTTL(token, now))
}

func TestCredentialTTLOpaqueToken(t *testing.T) {
	assert.Zero(t, credentialTTL("not-a-jwt", time.Now()))
	assert.Zero(t, credentialTTL("", time.Now()))
}
