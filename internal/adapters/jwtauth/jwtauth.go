// Package jwtauth implements the token ports with HS256-signed JWTs.
// HS256 is enforced explicitly on verification; no other algorithm is
// accepted, including "none".
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
)

// ErrInvalidToken is returned for tokens that fail parsing or validation.
var ErrInvalidToken = errors.New("invalid token")

// Signer issues and verifies HS256 bearer tokens.
type Signer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Options bundles dependencies for NewSigner.
type Options struct {
	Secret string
	Issuer string
	// Now overrides the clock; nil means time.Now. Useful in tests.
	Now func() time.Time
}

// NewSigner creates a Signer. Panics when the secret is empty: serving
// with an unsigned-token fallback is never acceptable.
func NewSigner(opts Options) *Signer {
	if opts.Secret == "" {
		panic("jwtauth: secret is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Signer{secret: []byte(opts.Secret), issuer: opts.Issuer, now: now}
}

// Issue signs a token carrying the claims, valid for ttl.
func (s *Signer) Issue(claims domainauth.Claims, ttl time.Duration) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    claims.UserID,
		"email": claims.Email,
		"role":  string(claims.Role),
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, rejecting bad signatures, unexpected
// algorithms, and expired tokens.
func (s *Signer) Verify(tokenStr string) (domainauth.Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return domainauth.Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domainauth.Claims{}, ErrInvalidToken
	}
	out, err := claimsFromMap(mapClaims)
	if err != nil {
		return domainauth.Claims{}, err
	}
	if s.issuer != "" {
		if iss, _ := mapClaims["iss"].(string); iss != s.issuer {
			return domainauth.Claims{}, ErrInvalidToken
		}
	}
	return out, nil
}

// PeekExpiry decodes the expiry claim without verifying the signature.
// Callers must never use it to grant access; it only lets the edge treat
// stale cookies as absent.
func (s *Signer) PeekExpiry(tokenStr string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, ErrInvalidToken
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrInvalidToken
	}
	return exp.Time, nil
}

func claimsFromMap(m jwt.MapClaims) (domainauth.Claims, error) {
	id, _ := m["id"].(string)
	email, _ := m["email"].(string)
	role, _ := m["role"].(string)
	if id == "" || role == "" {
		return domainauth.Claims{}, ErrInvalidToken
	}
	out := domainauth.Claims{
		UserID: id,
		Email:  email,
		Role:   domainauth.Role(role),
	}
	if exp, err := m.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
