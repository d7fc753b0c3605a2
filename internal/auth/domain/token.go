package domain

import "time"

// IssuedToken is what a successful login hands back. The token text is
// returned to the caller only; it is never stored.
type IssuedToken struct {
	Token     string
	TokenType string // always "Bearer"
	ExpiresAt time.Time
	ExpiresIn time.Duration
}
