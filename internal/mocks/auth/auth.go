package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"errors"
	"time"

	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
	"github.com/evenbetter/dtwin-cms/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TokenIssuer    = (*StaticTokenIssuer)(nil)
	_ ports.TokenVerifier  = (*MapTokenVerifier)(nil)
	_ ports.PasswordHasher = (*PlainPasswordHasher)(nil)
)

// StaticTokenIssuer returns a fixed token string and records the last claims.
type StaticTokenIssuer struct {
	Token string
	Err   error

	LastClaims domainauth.Claims
	LastTTL    time.Duration
	Calls      int
}

// Issue returns the configured token or error.
func (s *StaticTokenIssuer) Issue(claims domainauth.Claims, ttl time.Duration) (string, error) {
	s.Calls++
	s.LastClaims = claims
	s.LastTTL = ttl
	if s.Err != nil {
		return "", s.Err
	}
	if s.Token == "" {
		return "static-token", nil
	}
	return s.Token, nil
}

// MapTokenVerifier resolves tokens from a fixed map. Unknown tokens fail.
type MapTokenVerifier struct {
	Claims map[string]domainauth.Claims
	// Expiries backs PeekExpiry; tokens absent here peek as long-lived.
	Expiries map[string]time.Time
}

// Verify looks the token up in the map.
func (m *MapTokenVerifier) Verify(token string) (domainauth.Claims, error) {
	claims, ok := m.Claims[token]
	if !ok {
		return domainauth.Claims{}, errors.New("token not recognized")
	}
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(time.Now()) {
		return domainauth.Claims{}, errors.New("token expired")
	}
	return claims, nil
}

// PeekExpiry returns the configured expiry or a far-future time.
func (m *MapTokenVerifier) PeekExpiry(token string) (time.Time, error) {
	if exp, ok := m.Expiries[token]; ok {
		return exp, nil
	}
	if _, ok := m.Claims[token]; ok {
		return time.Now().Add(time.Hour), nil
	}
	return time.Time{}, errors.New("token not recognized")
}

// PlainPasswordHasher "hashes" by prefixing, making assertions readable.
type PlainPasswordHasher struct {
	HashErr error
}

const plainPrefix = "hashed:"

// Hash returns the password with a fixed prefix.
func (p *PlainPasswordHasher) Hash(password string) (string, error) {
	if p.HashErr != nil {
		return "", p.HashErr
	}
	return plainPrefix + password, nil
}

// Compare matches only hashes produced by Hash.
func (p *PlainPasswordHasher) Compare(hash, password string) error {
	if hash != plainPrefix+password {
		return errors.New("password mismatch")
	}
	return nil
}
