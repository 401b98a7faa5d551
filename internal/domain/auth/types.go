package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleSEO    Role = "seo"
)

// Valid reports whether the role is one of the recognized application roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleSEO:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is recognized.
// Unknown values are returned as-is so callers can surface them.
func ParseRole(value string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(value)))
	return r, r.Valid()
}

// Claims is the authenticated principal decoded from a bearer token.
type Claims struct {
	UserID    string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// Session is the edge-side view of an authenticated user, reconstructed from
// the auth-token and user-role cookies on every request. A zero Session means
// logged out.
type Session struct {
	Token string
	Role  Role
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool { return s.Token != "" }
