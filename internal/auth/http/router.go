package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"

	_ "github.com/aussiebroadwan/gatekeeper/api/gatekeeper" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	secret       jwtx.SecretSource
	scheme       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	AuthService    *service.AuthService
	IdentityLookup *service.IdentityLookup

	// Now is the login clock. Defaults to time.Now.
	Now func() time.Time
}

func NewRouter(
	codec *jwtx.Codec,
	secret jwtx.SecretSource,
	scheme, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		secret:       secret,
		scheme:       scheme,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Logging is outermost so recovered panics are logged with their request id.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerResources()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Gatekeeper Authentication Service API
//	@version		0.1.0
//	@description	Stateless bearer-token authentication. Tokens are HS256 signed JWTs; every request re-resolves the caller's role.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/gatekeeper
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authn builds the bearer-token pipeline for a route.
func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(httpx.AuthnOptions{
		Tokens:     r.codec,
		Identities: httpx.IdentityResolverFunc(r.resolveIdentity),
		Scheme:     r.scheme,
	})
}

func (r *Router) resolveIdentity(ctx context.Context, username string) (httpx.Identity, error) {
	id, err := r.IdentityLookup.Resolve(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			return httpx.Identity{}, httpx.ErrUnknownIdentity
		}
		return httpx.Identity{}, err
	}
	return httpx.Identity{Username: id.Username, Authorities: id.Authorities}, nil
}

// clock reads Now on every call so it can be swapped after routes are applied.
func (r *Router) clock() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Now: r.clock}

	// POST /register - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP + username to slow brute force
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "username"),
		),
	)
}

func (r *Router) registerResources() {
	// Anonymous allowed, identity bound when present
	r.Mux.Handle("GET /api/test/hello",
		httpx.Chain(http.HandlerFunc(HelloHandler),
			r.authn(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /api/test/me",
		httpx.Chain(http.HandlerFunc(MeHandler),
			r.authn(),
			httpx.RequireAuthenticated(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /api/test/admin",
		httpx.Chain(http.HandlerFunc(AdminHandler),
			r.authn(),
			httpx.RequireAuthority("ADMIN"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.secret),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
