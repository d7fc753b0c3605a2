package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
)

// schemaVersioner is implemented by drivers that track migrations.
type schemaVersioner interface {
	SchemaVersion() (version uint, dirty bool, err error)
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database connection, schema state and signing secret.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	secret jwtx.SecretSource,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK
		degrade := func() {
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: unreachable"
			degrade()
		}

		if sv, ok := st.(schemaVersioner); ok {
			v, dirty, err := sv.SchemaVersion()
			switch {
			case err != nil:
				checks.Schema = "error: unknown"
				degrade()
			case dirty:
				checks.Schema = fmt.Sprintf("error: version %d dirty", v)
				degrade()
			default:
				checks.Schema = fmt.Sprintf("%d", v)
			}
		}

		if secret == nil || len(secret.SigningKey()) == 0 {
			checks.Signer = "error: no secret loaded"
			degrade()
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
