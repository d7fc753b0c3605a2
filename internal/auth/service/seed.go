package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

// SeedUser is an account created at startup if it does not exist yet.
type SeedUser struct {
	Username string
	Password string
	Role     domain.Role
}

// DemoUsers are the well-known development accounts.
var DemoUsers = []SeedUser{
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
	{Username: "user", Password: "user123", Role: domain.RoleUser},
}

// Seed creates every missing user. Existing users are left untouched, so
// running it on each start is safe.
func (s *AuthService) Seed(ctx context.Context, users []SeedUser) error {
	l := slogx.FromContext(ctx)

	for _, su := range users {
		if _, err := domain.ParseRole(su.Role); err != nil {
			return err
		}

		_, err := s.createUser(ctx, su.Username, su.Password, su.Role)
		switch {
		case errors.Is(err, ErrUsernameTaken):
			l.Debug("seed user exists", "username", su.Username)
		case err != nil:
			return err
		default:
			l.Warn("seeded demo user; do not use in production", "username", su.Username, "role", string(su.Role))
		}
	}
	return nil
}
