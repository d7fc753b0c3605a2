package jwtx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CodecOptions configures a Codec. TTL has no default here; callers pass it.
type CodecOptions struct {
	Secret SecretSource
	TTL    time.Duration

	// Issuer is written to and required on every token. Empty disables the check.
	Issuer string

	// Leeway allows small clock skew when validating exp/nbf.
	Leeway time.Duration

	// Now overrides the verification clock. Defaults to time.Now.
	Now func() time.Time
}

// Codec issues and validates HS256 tokens. It is immutable and safe for
// concurrent use.
type Codec struct {
	secret SecretSource
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	issuer string
	leeway time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewCodec(opts CodecOptions) (*Codec, error) {
	if opts.Secret == nil || len(opts.Secret.SigningKey()) == 0 {
		return nil, ErrNoSecret
	}
	if opts.TTL <= 0 {
		return nil, ErrInvalidTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Codec{
		secret: opts.Secret,
		method: jwt.SigningMethodHS256,
		ttl:    opts.TTL,
		issuer: opts.Issuer,
		leeway: opts.Leeway,
		now:    now,
	}

	popts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.leeway),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		popts = append(popts, jwt.WithIssuer(c.issuer))
	}
	c.parser = jwt.NewParser(popts...)

	return c, nil
}

// TTL is the lifetime given to issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Now reads the codec clock.
func (c *Codec) Now() time.Time { return c.now() }

// Issue signs a token for subject valid from now until now+TTL. A zero now
// uses the codec clock.
func (c *Codec) Issue(subject string, authorities []string, now time.Time) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	if now.IsZero() {
		now = c.now()
	}

	claims := NewClaims(subject, authorities, c.issuer, now.UTC(), c.ttl)
	signed, err := jwt.NewWithClaims(c.method, claims).SignedString(c.secret.SigningKey())
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns its claims. The signature is checked
// over the raw header.payload text with the configured algorithm before any
// segment is parsed, so the header cannot select the algorithm.
//
// A token is expired once the clock reaches exp: at now == exp it is already
// rejected, which is one second earlier than a strict exp < now reading.
func (c *Codec) Decode(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, ErrMalformed
	}

	sig, err := base64.RawURLEncoding.Strict().DecodeString(parts[2])
	if err != nil {
		return nil, ErrMalformed
	}

	key := c.secret.SigningKey()
	if err := c.method.Verify(parts[0]+"."+parts[1], sig, key); err != nil {
		return nil, ErrBadSignature
	}

	var claims Claims
	_, err = c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}
	return &claims, nil
}

// ExtractSubject returns the verified "sub" claim.
func (c *Codec) ExtractSubject(token string) (string, error) {
	claims, err := c.Decode(token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}

// Validate reports whether token verifies and belongs to expectedSubject.
func (c *Codec) Validate(token, expectedSubject string) bool {
	claims, err := c.Decode(token)
	if err != nil {
		return false
	}
	return expectedSubject != "" && claims.Subject == expectedSubject
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %v", ErrNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidIssuer),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
