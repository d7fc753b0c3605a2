package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Role is a namespaced role string such as "ROLE_ADMIN".
type Role string

const (
	rolePrefix    = "ROLE"
	roleDelimiter = "_"

	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ErrMalformedRole reports stored role data that is not ROLE_<NAME>.
var ErrMalformedRole = errors.New("domain: malformed role")

// ParseRole returns the authority a role grants. Everything after the first
// delimiter is the authority, so "ROLE_SUPER_USER" grants "SUPER_USER".
func ParseRole(r Role) (string, error) {
	prefix, name, ok := strings.Cut(string(r), roleDelimiter)
	if !ok || prefix != rolePrefix || name == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedRole, string(r))
	}
	return name, nil
}

// Authorities is ParseRole lifted to the authority set.
func (r Role) Authorities() ([]string, error) {
	a, err := ParseRole(r)
	if err != nil {
		return nil, err
	}
	return []string{a}, nil
}
