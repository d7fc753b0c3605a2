//go:build e2e

package gatekeeper_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRegisterLoginAndMe covers register, login and the authenticated
// resource in a single session.
func TestRegisterLoginAndMe(t *testing.T) {
	client := setupContainer(t, nil)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "alice", "pw1"))
	token := login(t, client, "alice", "pw1")

	me, err := client.Me(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "alice", me.Username)
	require.Equal(t, []string{"USER"}, me.Authorities)

	msg, err := client.Hello(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "Hello, alice!", msg)

	err = client.Register(ctx, "alice", "password2")
	assertStatus(t, err, http.StatusConflict, "duplicate register")
}

// TestAnonymousAccess verifies the open, authenticated and role-gated routes
// without any Authorization header.
func TestAnonymousAccess(t *testing.T) {
	client := setupContainer(t, nil)
	ctx := t.Context()

	msg, err := client.Hello(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "Hello, anonymous!", msg)

	_, err = client.Me(ctx, "")
	assertStatus(t, err, http.StatusUnauthorized, "me without token")

	_, err = client.Admin(ctx, "")
	assertStatus(t, err, http.StatusForbidden, "admin without token")
}

// TestRoleGate verifies a ROLE_USER caller is denied the admin route while
// the seeded admin is allowed.
func TestRoleGate(t *testing.T) {
	client := setupContainer(t, nil)
	ctx := t.Context()

	require.NoError(t, client.Register(ctx, "bob", "password1"))
	userToken := login(t, client, "bob", "password1")
	_, err := client.Admin(ctx, userToken)
	assertStatus(t, err, http.StatusForbidden, "user on admin route")

	adminToken := login(t, client, adminUsername, adminPassword)
	msg, err := client.Admin(ctx, adminToken)
	require.NoError(t, err)
	require.Equal(t, "Hello, admin admin!", msg)
}

// TestTamperedToken verifies a modified token is rejected on every route.
func TestTamperedToken(t *testing.T) {
	client := setupContainer(t, nil)
	ctx := t.Context()

	token := login(t, client, adminUsername, adminPassword)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err := client.Hello(ctx, tampered)
	assertStatus(t, err, http.StatusUnauthorized, "hello with tampered token")
	_, err = client.Me(ctx, tampered)
	assertStatus(t, err, http.StatusUnauthorized, "me with tampered token")
	_, err = client.Admin(ctx, tampered)
	assertStatus(t, err, http.StatusUnauthorized, "admin with tampered token")
}

// TestInvalidCredentials verifies login failures do not reveal which part
// was wrong.
func TestInvalidCredentials(t *testing.T) {
	client := setupContainer(t, nil)
	ctx := t.Context()

	_, err := client.Login(ctx, adminUsername, "wrong-password")
	assertStatus(t, err, http.StatusUnauthorized, "wrong password")

	_, err = client.Login(ctx, "nobody", "wrong-password")
	assertStatus(t, err, http.StatusUnauthorized, "unknown user")
}
