package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	tests := []struct {
		role  Role
		valid bool
	}{
		{RoleAdmin, true},
		{RoleEditor, true},
		{RoleSEO, true},
		{Role(""), false},
		{Role("superuser"), false},
		{Role("Admin"), false}, // roles are case-sensitive on the wire
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.role.Valid(), "role %q", tt.role)
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("editor")
	assert.True(t, ok)
	assert.Equal(t, RoleEditor, r)

	// Parsing forgives case and whitespace even though Valid does not.
	r, ok = ParseRole(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, r)

	r, ok = ParseRole("viewer")
	assert.False(t, ok)
	assert.Equal(t, Role("viewer"), r)
}

func TestSessionAuthenticated(t *testing.T) {
	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{Role: RoleAdmin}.Authenticated())
	assert.True(t, Session{Token: "t", Role: RoleAdmin}.Authenticated())
}
