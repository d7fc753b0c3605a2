package cryptox

import (
	"errors"
	"fmt"
	"strings"
)

const (
	SchemeArgon2id = "argon2id"
	SchemeBcrypt   = "bcrypt"
)

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrUnknownScheme    = errors.New("cryptox: unknown password hash scheme")
)

// Hasher is the one-way password primitive used by credential checks and
// registration.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error
}

// NewHasher returns a Hasher that writes new hashes with scheme but verifies
// both Argon2id and bcrypt hashes, so switching schemes does not lock out
// existing users.
func NewHasher(scheme string, bcryptCost int) (Hasher, error) {
	var primary Hasher
	switch strings.ToLower(scheme) {
	case "", SchemeArgon2id:
		primary = Argon2id{}
	case SchemeBcrypt:
		primary = Bcrypt{Cost: bcryptCost}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return &schemeHasher{
		primary: primary,
		argon:   Argon2id{},
		bcrypt:  Bcrypt{Cost: bcryptCost},
	}, nil
}

type schemeHasher struct {
	primary Hasher
	argon   Argon2id
	bcrypt  Bcrypt
}

func (h *schemeHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *schemeHasher) Verify(password, encodedHash string) error {
	switch {
	case strings.HasPrefix(encodedHash, argon2idPrefix):
		return h.argon.Verify(password, encodedHash)
	case isBcryptHash(encodedHash):
		return h.bcrypt.Verify(password, encodedHash)
	default:
		return ErrUnknownScheme
	}
}
