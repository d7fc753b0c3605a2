package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/aussiebroadwan/gatekeeper/pkg/idx"
	"github.com/aussiebroadwan/gatekeeper/pkg/jwtx"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

type AuthService struct {
	Credentials *CredentialVerifier
	Tokens      *jwtx.Codec
	Store       store.Store
	Hasher      cryptox.Hasher
	Timeout     time.Duration
}

// Login verifies credentials and issues a bearer token. A zero now uses the
// codec clock. Only the token fingerprint is logged.
func (s *AuthService) Login(ctx context.Context, username, password string, now time.Time) (domain.IssuedToken, error) {
	l := slogx.FromContext(ctx)

	id, err := s.Credentials.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			l.Info("login rejected", "username", username)
		}
		return domain.IssuedToken{}, err
	}

	if now.IsZero() {
		now = s.Tokens.Now()
	}
	token, err := s.Tokens.Issue(id.Username, id.Authorities, now)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("issue token: %w", err)
	}

	ttl := s.Tokens.TTL()
	l.Info("login succeeded",
		"username", id.Username,
		"token_fp", cryptox.FingerprintToken(token),
	)

	return domain.IssuedToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: now.Add(ttl),
		ExpiresIn: ttl,
	}, nil
}

// Register creates a ROLE_USER account. Callers cannot choose their role.
func (s *AuthService) Register(ctx context.Context, username, password string) (domain.User, error) {
	return s.createUser(ctx, username, password, domain.RoleUser)
}

func (s *AuthService) createUser(ctx context.Context, username, password string, role domain.Role) (domain.User, error) {
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	sctx, cancel := storeContext(ctx, s.Timeout)
	defer cancel()

	err = s.Store.WithTx(sctx, func(tx store.Tx) error {
		_, err := tx.Users().GetUserByUsername(sctx, username)
		switch {
		case err == nil:
			return ErrUsernameTaken
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("lookup user: %w", err)
		}
		return tx.Users().CreateUser(sctx, u)
	})
	switch {
	case errors.Is(err, ErrUsernameTaken), errors.Is(err, store.ErrAlreadyExists):
		return domain.User{}, ErrUsernameTaken
	case err != nil:
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user registered", "username", username, "user_id", u.ID, "role", string(role))
	return u, nil
}
