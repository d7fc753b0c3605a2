package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	users map[string][]string
	err   error
	calls int
}

func (d *fakeDirectory) ResolveIdentity(_ context.Context, username string) (httpx.Identity, error) {
	d.calls++
	if d.err != nil {
		return httpx.Identity{}, d.err
	}
	auths, ok := d.users[username]
	if !ok {
		return httpx.Identity{}, httpx.ErrUnknownIdentity
	}
	return httpx.Identity{Username: username, Authorities: auths}, nil
}

func testCodec(t *testing.T) *jwtx.Codec {
	t.Helper()
	secret, err := jwtx.NewStaticSecret([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	c, err := jwtx.NewCodec(jwtx.CodecOptions{Secret: secret, TTL: time.Hour, Issuer: "gatekeeper"})
	require.NoError(t, err)
	return c
}

// captured records what the innermost handler saw.
type captured struct {
	called bool
	sc     httpx.SecurityContext
}

func (c *captured) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.called = true
		c.sc = httpx.SecurityContextFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func withAuth(req *http.Request, value string) *http.Request {
	req.Header.Set("Authorization", value)
	return req
}

func TestAuthnMiddleware(t *testing.T) {
	codec := testCodec(t)
	aliceToken, err := codec.Issue("alice", []string{"USER"}, time.Time{})
	require.NoError(t, err)
	ghostToken, err := codec.Issue("ghost", nil, time.Time{})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		dirErr     error
		wantCode   int
		wantCalled bool
		wantUser   string
		wantBearer bool
	}{
		{name: "no header is anonymous", wantCode: http.StatusOK, wantCalled: true},
		{name: "other scheme is anonymous", header: "Basic YWxpY2U6cHc=", wantCode: http.StatusOK, wantCalled: true},
		{name: "valid token binds identity", header: "Bearer " + aliceToken, wantCode: http.StatusOK, wantCalled: true, wantUser: "alice"},
		{name: "garbage token", header: "Bearer not.a.token", wantCode: http.StatusUnauthorized, wantBearer: true},
		{name: "empty token", header: "Bearer ", wantCode: http.StatusUnauthorized, wantBearer: true},
		{name: "unknown subject", header: "Bearer " + ghostToken, wantCode: http.StatusUnauthorized, wantBearer: true},
		{name: "lookup failure", header: "Bearer " + aliceToken, dirErr: errors.New("db down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeDirectory{users: map[string][]string{"alice": {"USER"}}, err: tt.dirErr}
			var got captured
			h := httpx.Chain(got.handler(), httpx.AuthnMiddleware(httpx.AuthnOptions{Tokens: codec, Identities: dir}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				withAuth(req, tt.header)
			}
			rec := serve(h, req)

			require.Equal(t, tt.wantCode, rec.Code)
			require.Equal(t, tt.wantCalled, got.called)
			if tt.wantCalled {
				require.Equal(t, tt.wantUser, got.sc.Username())
				require.Equal(t, tt.wantUser != "", got.sc.Authenticated())
			}
			if tt.wantBearer {
				require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
			}
			require.NotContains(t, rec.Body.String(), aliceToken)
		})
	}
}

func TestAuthnMiddlewareBindsAuthorities(t *testing.T) {
	codec := testCodec(t)
	// Authorities come from the directory, not the token.
	token, err := codec.Issue("alice", []string{"ADMIN"}, time.Time{})
	require.NoError(t, err)

	dir := &fakeDirectory{users: map[string][]string{"alice": {"USER"}}}
	var got captured
	h := httpx.AuthnMiddleware(httpx.AuthnOptions{Tokens: codec, Identities: dir})(got.handler())

	serve(h, withAuth(httptest.NewRequest(http.MethodGet, "/", nil), "Bearer "+token))
	require.Equal(t, []string{"USER"}, got.sc.Authorities())
}

// mismatchTokens verifies but always disagrees on the subject.
type mismatchTokens struct{}

func (mismatchTokens) ExtractSubject(string) (string, error) { return "alice", nil }
func (mismatchTokens) Validate(string, string) bool        { return false }

func TestAuthnMiddlewareRejectsFailedValidation(t *testing.T) {
	dir := &fakeDirectory{users: map[string][]string{"alice": nil}}
	var got captured
	h := httpx.AuthnMiddleware(httpx.AuthnOptions{Tokens: mismatchTokens{}, Identities: dir})(got.handler())

	rec := serve(h, withAuth(httptest.NewRequest(http.MethodGet, "/", nil), "Bearer x.y.z"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, got.called)
}

func TestAuthnMiddlewareIsIdempotent(t *testing.T) {
	codec := testCodec(t)
	token, err := codec.Issue("alice", nil, time.Time{})
	require.NoError(t, err)

	dir := &fakeDirectory{users: map[string][]string{"alice": {"USER"}}}
	authn := httpx.AuthnMiddleware(httpx.AuthnOptions{Tokens: codec, Identities: dir})

	var got captured
	h := httpx.Chain(got.handler(), authn, authn)
	rec := serve(h, withAuth(httptest.NewRequest(http.MethodGet, "/", nil), "Bearer "+token))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, dir.calls)
	require.Equal(t, "alice", got.sc.Username())
	require.Equal(t, []string{"USER"}, got.sc.Authorities())
}

func TestAuthnMiddlewareCustomScheme(t *testing.T) {
	codec := testCodec(t)
	token, err := codec.Issue("alice", nil, time.Time{})
	require.NoError(t, err)

	dir := &fakeDirectory{users: map[string][]string{"alice": nil}}
	var got captured
	h := httpx.AuthnMiddleware(httpx.AuthnOptions{Tokens: codec, Identities: dir, Scheme: "Token "})(got.handler())

	serve(h, withAuth(httptest.NewRequest(http.MethodGet, "/", nil), "Token "+token))
	require.Equal(t, "alice", got.sc.Username())

	got = captured{}
	serve(h, withAuth(httptest.NewRequest(http.MethodGet, "/", nil), "Bearer "+token))
	require.True(t, got.called)
	require.False(t, got.sc.Authenticated())
}

func TestAuthnMiddlewareStopsOnCancelledRequest(t *testing.T) {
	codec := testCodec(t)
	token, err := codec.Issue("alice", nil, time.Time{})
	require.NoError(t, err)

	dir := &fakeDirectory{users: map[string][]string{"alice": nil}}
	var got captured
	h := httpx.AuthnMiddleware(httpx.AuthnOptions{Tokens: codec, Identities: dir})(got.handler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := withAuth(httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx), "Bearer "+token)
	rec := serve(h, req)

	require.False(t, got.called)
	require.Zero(t, dir.calls)
	require.Empty(t, rec.Body.String())
}

func TestIdentityResolverFunc(t *testing.T) {
	r := httpx.IdentityResolverFunc(func(_ context.Context, u string) (httpx.Identity, error) {
		return httpx.Identity{Username: u}, nil
	})
	id, err := r.ResolveIdentity(context.Background(), "bob")
	require.NoError(t, err)
	require.Equal(t, "bob", id.Username)
}
