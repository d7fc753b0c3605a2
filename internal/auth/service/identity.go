package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/store"
)

// IdentityLookup resolves a username to its current identity. Nothing is
// cached, so a role change applies from the next request on.
type IdentityLookup struct {
	Store   store.Store
	Timeout time.Duration
}

func (l *IdentityLookup) Resolve(ctx context.Context, username string) (domain.Identity, error) {
	sctx, cancel := storeContext(ctx, l.Timeout)
	defer cancel()

	u, err := l.Store.Users().GetUserByUsername(sctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Identity{}, ErrUnknownUser
	case err != nil:
		return domain.Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	id, err := u.Identity()
	if err != nil {
		return domain.Identity{}, fmt.Errorf("resolve %q: %w", username, err)
	}
	return id, nil
}
