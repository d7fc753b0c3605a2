package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasherSchemes(t *testing.T) {
	tests := []struct {
		scheme string
		prefix string
	}{
		{"", "$argon2id$"},
		{"argon2id", "$argon2id$"},
		{"BCRYPT", "$2a$"},
	}
	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			h, err := NewHasher(tt.scheme, bcrypt.MinCost)
			require.NoError(t, err)

			hash, err := h.Hash("admin123")
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, tt.prefix), hash)
			require.NoError(t, h.Verify("admin123", hash))
			require.ErrorIs(t, h.Verify("admin124", hash), ErrPasswordMismatch)
		})
	}
}

func TestNewHasherUnknownScheme(t *testing.T) {
	_, err := NewHasher("md5", 0)
	require.ErrorIs(t, err, ErrUnknownScheme)
}

func TestHasherVerifiesAcrossSchemes(t *testing.T) {
	argonHash, err := Argon2id{}.Hash("secret")
	require.NoError(t, err)
	bcryptHash, err := Bcrypt{Cost: bcrypt.MinCost}.Hash("secret")
	require.NoError(t, err)

	h, err := NewHasher(SchemeBcrypt, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, h.Verify("secret", argonHash))
	require.NoError(t, h.Verify("secret", bcryptHash))

	require.ErrorIs(t, h.Verify("secret", "plaintext"), ErrUnknownScheme)
}

func TestBcryptDefaultCost(t *testing.T) {
	if testing.Short() {
		t.Skip("bcrypt cost 12 is slow")
	}
	hash, err := Bcrypt{}.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, DefaultBcryptCost, cost)
}

func TestBcryptRejectsLongPassword(t *testing.T) {
	_, err := Bcrypt{Cost: bcrypt.MinCost}.Hash(strings.Repeat("x", 73))
	require.Error(t, err)
}

func TestBcryptVerifyRejectsSharedPrefix(t *testing.T) {
	b := Bcrypt{Cost: bcrypt.MinCost}
	pw := strings.Repeat("a", 72)
	hash, err := b.Hash(pw)
	require.NoError(t, err)

	require.NoError(t, b.Verify(pw, hash))
	require.ErrorIs(t, b.Verify(pw+"EXTRA", hash), ErrPasswordMismatch)
}
