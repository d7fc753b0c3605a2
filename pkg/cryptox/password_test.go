package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestArgon2idHashAndVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	var h Argon2id
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))
			require.Contains(t, hash, "m=19456,t=2,p=1")

			require.NoError(t, h.Verify(tt.password, hash))
			require.ErrorIs(t, h.Verify(tt.password+"x", hash), ErrPasswordMismatch)
		})
	}
}

func TestArgon2idSaltsDiffer(t *testing.T) {
	var h Argon2id
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestArgon2idRejectsMalformedHash(t *testing.T) {
	var h Argon2id
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"too few parts", "$argon2id$v=19$m=1"},
		{"wrong algorithm", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x,t=2,p=1$c2FsdA$aGFzaA"},
		{"zero memory", "$argon2id$v=19$m=0,t=2,p=1$c2FsdA$aGFzaA"},
		{"zero iterations", "$argon2id$v=19$m=19456,t=0,p=1$c2FsdA$aGFzaA"},
		{"zero parallelism", "$argon2id$v=19$m=19456,t=2,p=0$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA"},
		{"bad hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify("pw", tt.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}

func TestPepperIsPersisted(t *testing.T) {
	p1, err := GetPepper()
	require.NoError(t, err)
	require.NotEmpty(t, p1)

	p2, err := GetPepper()
	require.NoError(t, err)
	require.Equal(t, p1, p2)
}
