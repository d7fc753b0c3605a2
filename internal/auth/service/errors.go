package service

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUnknownUser        = errors.New("unknown_user")
	ErrUsernameTaken      = errors.New("username_taken")
)

// storeContext bounds a single store call. A zero timeout leaves ctx as is.
func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
