package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
	"github.com/aussiebroadwan/gatekeeper/pkg/slogx"
)

type UserService struct {
	Store   store.Store
	Timeout time.Duration
}

// SetRole changes a user's role. Tokens already issued keep working and pick
// up the new authorities on their next request.
func (s *UserService) SetRole(ctx context.Context, username string, role domain.Role) error {
	if _, err := domain.ParseRole(role); err != nil {
		return err
	}

	sctx, cancel := storeContext(ctx, s.Timeout)
	defer cancel()

	if err := s.Store.Users().UpdateRole(sctx, username, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnknownUser
		}
		return fmt.Errorf("update role: %w", err)
	}

	slogx.FromContext(ctx).Info("role updated", "username", username, "role", string(role))
	return nil
}
