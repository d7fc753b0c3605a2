package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when Bcrypt.Cost is zero.
const DefaultBcryptCost = 12

// bcryptMaxPassword is the longest input bcrypt reads.
const bcryptMaxPassword = 72

// Bcrypt hashes passwords with bcrypt. Hash rejects inputs longer than 72
// bytes. Verify treats them as a mismatch, since the comparison would
// otherwise ignore everything past byte 72.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

func (Bcrypt) Verify(password, encodedHash string) error {
	if len(password) > bcryptMaxPassword {
		return ErrPasswordMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}

func isBcryptHash(s string) bool {
	if len(s) < 4 || s[0] != '$' || s[3] != '$' {
		return false
	}
	switch s[1:3] {
	case "2a", "2b", "2y":
		return true
	}
	return false
}
