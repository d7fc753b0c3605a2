package httpx

import (
	"context"
	"errors"
	"slices"
)

type ctxKey string

const ctxKeySecurity ctxKey = "security_context"

// ErrForbidden is returned when the caller lacks a required authority.
var ErrForbidden = errors.New("httpx: forbidden")

// SecurityContext is the per-request authentication outcome. The zero value
// is the anonymous context. It is immutable once built.
type SecurityContext struct {
	username    string
	authorities []string
}

// Anonymous is the context of a request that carried no credentials.
var Anonymous = SecurityContext{}

func NewSecurityContext(username string, authorities []string) SecurityContext {
	return SecurityContext{username: username, authorities: slices.Clone(authorities)}
}

func (s SecurityContext) Authenticated() bool { return s.username != "" }

func (s SecurityContext) Username() string { return s.username }

func (s SecurityContext) Authorities() []string { return slices.Clone(s.authorities) }

func (s SecurityContext) HasAuthority(authority string) bool {
	return slices.Contains(s.authorities, authority)
}

// RequireAuthority returns ErrForbidden unless the context is authenticated
// and holds required. Anonymous callers are forbidden, not unauthorized.
func (s SecurityContext) RequireAuthority(required string) error {
	if !s.Authenticated() || !s.HasAuthority(required) {
		return ErrForbidden
	}
	return nil
}

// WithSecurityContext binds sc into ctx.
func WithSecurityContext(ctx context.Context, sc SecurityContext) context.Context {
	return context.WithValue(ctx, ctxKeySecurity, sc)
}

// SecurityContextFrom returns the bound context, or Anonymous when none is.
func SecurityContextFrom(ctx context.Context) SecurityContext {
	if sc, ok := ctx.Value(ctxKeySecurity).(SecurityContext); ok {
		return sc
	}
	return Anonymous
}
