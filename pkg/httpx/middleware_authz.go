package httpx

import "net/http"

// RequireAuthority lets the request through only when the bound context
// holds authority. Everything else, anonymous callers included, gets 403.
func RequireAuthority(authority string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := SecurityContextFrom(r.Context()).RequireAuthority(authority); err != nil {
				writeBearerScopeError(w, authority)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SecurityContextFrom(r.Context()).Authenticated() {
				w.Header().Set("WWW-Authenticate", `Bearer`)
				WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
