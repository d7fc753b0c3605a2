package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/aussiebroadwan/gatekeeper/pkg/authsdk"
	"github.com/aussiebroadwan/gatekeeper/pkg/httpx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

type AuthHandler struct {
	AuthService *service.AuthService
	Now         func() time.Time
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create a ROLE_USER account. The role cannot be chosen by the caller.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest	true	"username and password"
//	@Success		200		{object}	authsdk.MessageResponse	"user registered"
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid_request"
//	@Failure		409		{object}	authsdk.ErrorResponse	"username_taken"
//	@Failure		500		{object}	authsdk.ErrorResponse	"server_error"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	}

	if _, err := h.AuthService.Register(ctx, req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			authsdk.ErrUsernameTaken.WriteError(w)
		default:
			log.Error("failed to register user", "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "user registered"})
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchange a username and password for a signed bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"username and password"
//	@Success		200		{object}	authsdk.LoginResponse	"token, token_type, expires_in"
//	@Failure		400		{object}	authsdk.ErrorResponse	"invalid_request"
//	@Failure		401		{object}	authsdk.ErrorResponse	"invalid_credentials"
//	@Failure		500		{object}	authsdk.ErrorResponse	"server_error"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authsdk.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidRequest, err.Error()).WriteError(w)
		return
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}

	issued, err := h.AuthService.Login(ctx, req.Username, req.Password, now)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			authsdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("login failed", "username", req.Username, "err", err)
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Token:     issued.Token,
		TokenType: issued.TokenType,
		ExpiresIn: int(issued.ExpiresIn.Seconds()),
	})
}
