package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"time"

	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
)

// TokenIssuer mints signed bearer tokens for authenticated users.
type TokenIssuer interface {
	// Issue signs a token carrying the claims, valid for ttl.
	Issue(claims domainauth.Claims, ttl time.Duration) (string, error)
}

// TokenVerifier validates bearer tokens and recovers the claims.
type TokenVerifier interface {
	// Verify parses and validates a token, rejecting bad signatures,
	// unexpected algorithms, and expired tokens.
	Verify(token string) (domainauth.Claims, error)

	// PeekExpiry decodes the expiry claim without verifying the signature.
	// The edge uses it to treat stale cookies as absent; it must never be
	// used to grant access.
	PeekExpiry(token string) (time.Time, error)
}

// PasswordHasher hashes and checks user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when password matches the stored hash.
	Compare(hash, password string) error
}
