package http

import (
	"net/http"

	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
)

// HelloHandler godoc
//
//	@Summary		Greeting
//	@Description	Open to anonymous callers. Greets the caller by name when a valid token is sent.
//	@Tags			Resources
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MessageResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_token"
//	@Router			/api/test/hello [get].
func HelloHandler(w http.ResponseWriter, r *http.Request) {
	msg := "Hello, anonymous!"
	if sc := httpx.SecurityContextFrom(r.Context()); sc.Authenticated() {
		msg = "Hello, " + sc.Username() + "!"
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: msg})
}

// MeHandler godoc
//
//	@Summary		Current caller
//	@Description	Returns the authenticated username and the authorities resolved for this request.
//	@Tags			Resources
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MeResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"unauthorized, invalid_token"
//	@Router			/api/test/me [get].
func MeHandler(w http.ResponseWriter, r *http.Request) {
	sc := httpx.SecurityContextFrom(r.Context())
	httpx.WriteJSON(w, http.StatusOK, authsdk.MeResponse{
		Username:    sc.Username(),
		Authorities: sc.Authorities(),
	})
}

// AdminHandler godoc
//
//	@Summary		Admin resource
//	@Description	Requires the ADMIN authority.
//	@Tags			Resources
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MessageResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"invalid_token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"insufficient_scope"
//	@Router			/api/test/admin [get].
func AdminHandler(w http.ResponseWriter, r *http.Request) {
	sc := httpx.SecurityContextFrom(r.Context())
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Hello, admin " + sc.Username() + "!"})
}
