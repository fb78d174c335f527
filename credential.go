package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// credentialTTL derives a storage TTL hint from the token's exp claim.
// The token is never validated here; the backend stays the authority on
// whether it is accepted. Opaque (non-JWT) tokens and tokens without an
// expiry yield zero, meaning no hint.
func credentialTTL(token string, now time.Time) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}

	ttl := exp.Time.Sub(now)
	if ttl < 0 {
		return 0
	}
	return ttl
}
