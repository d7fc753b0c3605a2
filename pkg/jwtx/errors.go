package jwtx

import "errors"

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrBadSignature = errors.New("jwtx: invalid signature")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")

	ErrWeakSecret   = errors.New("jwtx: signing secret too short")
	ErrNoSecret     = errors.New("jwtx: no signing secret")
	ErrInvalidTTL   = errors.New("jwtx: token ttl must be positive")
	ErrEmptySubject = errors.New("jwtx: empty subject")
)
