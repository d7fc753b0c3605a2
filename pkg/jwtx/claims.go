package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access-token claims. Authorities is informational only:
// the server re-resolves authorities from the user store on every request.
type Claims struct {
	jwt.RegisteredClaims

	// Authorities granted at issue time, e.g. ["ADMIN"].
	Authorities []string `json:"authorities,omitempty"`
}

// NewClaims builds minimally-correct claims for subject valid from now for ttl.
func NewClaims(subject string, authorities []string, issuer string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Authorities: authorities,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim. It also
// keeps two tokens for the same subject and second from sharing a signature.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
