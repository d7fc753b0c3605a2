package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// CredentialVerifier checks a username and password against the user store.
// Build it with NewCredentialVerifier.
type CredentialVerifier struct {
	store   store.Store
	hasher  cryptox.Hasher
	timeout time.Duration

	// dummyHash is a real hash in the active scheme, checked when the user
	// does not exist so that path costs the same as a wrong password.
	dummyHash string
}

// NewCredentialVerifier hashes the not-found placeholder up front, so no
// login pays for it and a broken hasher fails at startup.
func NewCredentialVerifier(st store.Store, hasher cryptox.Hasher, timeout time.Duration) (*CredentialVerifier, error) {
	h, err := hasher.Hash("gatekeeper-timing-equaliser")
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}
	return &CredentialVerifier{store: st, hasher: hasher, timeout: timeout, dummyHash: h}, nil
}

// Verify returns the caller's identity when the password matches. Unknown
// users and wrong passwords are indistinguishable: both return
// ErrInvalidCredentials after one hash comparison.
func (v *CredentialVerifier) Verify(ctx context.Context, username, password string) (domain.Identity, error) {
	l := slogx.FromContext(ctx)

	sctx, cancel := storeContext(ctx, v.timeout)
	u, err := v.store.Users().GetUserByUsername(sctx, username)
	cancel()

	switch {
	case errors.Is(err, store.ErrNotFound):
		_ = v.hasher.Verify(password, v.dummyHash)
		return domain.Identity{}, ErrInvalidCredentials
	case err != nil:
		return domain.Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := v.hasher.Verify(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.Identity{}, ErrInvalidCredentials
		}
		l.Error("stored password hash unusable", "username", username, "err", err)
		return domain.Identity{}, fmt.Errorf("verify password: %w", err)
	}

	id, err := u.Identity()
	if err != nil {
		l.Error("stored role unusable", "username", username, "err", err)
		return domain.Identity{}, err
	}
	return id, nil
}
