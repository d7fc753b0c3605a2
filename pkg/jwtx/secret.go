package jwtx

import "slices"

// MinSecretLength is the shortest HS256 key accepted, 256 bits.
const MinSecretLength = 32

// SecretSource supplies the HMAC signing key. Every sign and verify goes
// through SigningKey, so an implementation that reloads the key is picked up
// without touching callers.
type SecretSource interface {
	SigningKey() []byte
}

// StaticSecret is a SecretSource holding one fixed key.
type StaticSecret struct {
	key []byte
}

// NewStaticSecret copies key and rejects anything shorter than MinSecretLength.
func NewStaticSecret(key []byte) (StaticSecret, error) {
	if len(key) < MinSecretLength {
		return StaticSecret{}, ErrWeakSecret
	}
	return StaticSecret{key: slices.Clone(key)}, nil
}

func (s StaticSecret) SigningKey() []byte { return s.key }
