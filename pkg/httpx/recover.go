package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// Recover turns a handler panic into a generic 500. The panic value is
// logged; the response never carries it.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			slogx.FromContext(r.Context()).Error("panic recovered",
				"panic", v,
				"method", r.Method,
				"path", r.URL.Path,
			)
			WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
