package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// DefaultScheme is the Authorization header prefix carrying the token.
const DefaultScheme = "Bearer "

// ErrUnknownIdentity is returned by an IdentityResolver when the token's
// subject no longer exists.
var ErrUnknownIdentity = errors.New("httpx: unknown identity")

// Identity is what an IdentityResolver knows about a token subject.
type Identity struct {
	Username    string
	Authorities []string
}

// TokenValidator is satisfied by *jwtx.Codec.
type TokenValidator interface {
	ExtractSubject(token string) (string, error)
	Validate(token, expectedSubject string) bool
}

type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, username string) (Identity, error)
}

// IdentityResolverFunc adapts a plain function to IdentityResolver.
type IdentityResolverFunc func(ctx context.Context, username string) (Identity, error)

func (f IdentityResolverFunc) ResolveIdentity(ctx context.Context, username string) (Identity, error) {
	return f(ctx, username)
}

type AuthnOptions struct {
	Tokens     TokenValidator
	Identities IdentityResolver

	// Scheme is the header prefix, defaults to DefaultScheme.
	Scheme string
}

// AuthnMiddleware authenticates bearer tokens and binds a SecurityContext.
// Requests without a token pass through as anonymous; deciding whether that
// is acceptable is left to the authorization middleware.
func AuthnMiddleware(opts AuthnOptions) Middleware {
	scheme := opts.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if !strings.HasPrefix(authz, scheme) {
				next.ServeHTTP(w, r)
				return
			}

			// Already authenticated further up the chain.
			if SecurityContextFrom(ctx).Authenticated() {
				next.ServeHTTP(w, r)
				return
			}

			raw := strings.TrimSpace(authz[len(scheme):])

			subject, err := opts.Tokens.ExtractSubject(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			if ctx.Err() != nil {
				return
			}

			id, err := opts.Identities.ResolveIdentity(ctx, subject)
			switch {
			case err == nil:
			case errors.Is(err, ErrUnknownIdentity):
				log.Warn("token subject not found", "username", subject)
				writeBearerError(w, "token verification failed")
				return
			case ctx.Err() != nil:
				return
			default:
				log.Error("identity lookup failed", "username", subject, "err", err)
				WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
				return
			}

			if !opts.Tokens.Validate(raw, id.Username) {
				log.Warn("token does not match identity", "username", subject)
				writeBearerError(w, "token verification failed")
				return
			}

			// Inject into context for downstream handlers.
			ctx = WithSecurityContext(ctx, NewSecurityContext(id.Username, id.Authorities))
			ctx = slogx.With(ctx, "username", id.Username)
			slogx.FromContext(ctx).Debug("request authenticated")

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
