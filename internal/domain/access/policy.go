package access

// Package access implements the pure access-control policy for the dashboard:
// URL path classification into zones and the allow/redirect decision applied
// by the edge gate. It performs no I/O and holds no state.

import (
	"strings"

	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
)

// Zone classifies a URL path for access-control purposes.
type Zone string

const (
	// ZonePublic covers the fixed set of pages reachable without a session.
	ZonePublic Zone = "public"
	// ZoneAdmin covers /admin and, by construction, every path that belongs
	// to no other zone: unlisted paths are reachable only by admins.
	ZoneAdmin Zone = "admin"
	// ZoneEditor covers /editor.
	ZoneEditor Zone = "editor"
	// ZoneSEO covers /seo.
	ZoneSEO Zone = "seo"
)

// LoginPath is the page unauthenticated users are redirected to.
const LoginPath = "/login"

// publicPaths is the exact-match set of pages that never require a session.
var publicPaths = map[string]struct{}{
	"/":                {},
	"/login":           {},
	"/forgot-password": {},
	"/admin-setup":     {},
}

// zonePrefixes maps role-area path prefixes to their zones. Matching is
// segment-aware: "/editor" and "/editor/blogs" match, "/editors" does not.
var zonePrefixes = []struct {
	prefix string
	zone   Zone
}{
	{"/admin", ZoneAdmin},
	{"/editor", ZoneEditor},
	{"/seo", ZoneSEO},
}

// Classify maps a request path to exactly one zone. Prefix zones win over the
// public set; paths outside every prefix and the public set fall into the
// admin zone, which keeps unlisted pages admin-only.
func Classify(path string) Zone {
	for _, zp := range zonePrefixes {
		if matchesSegmentPrefix(path, zp.prefix) {
			return zp.zone
		}
	}
	if _, ok := publicPaths[path]; ok {
		return ZonePublic
	}
	return ZoneAdmin
}

// matchesSegmentPrefix reports whether path equals prefix or starts with
// prefix followed by a path separator. A plain strings.HasPrefix would
// misclassify "/administrator" as the admin zone.
func matchesSegmentPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || rest[0] == '/'
}

// Decision is the outcome of a policy evaluation for one request.
// Either Allow is true, or RedirectTo names the target path.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Allowed is the decision that lets a request pass through.
func Allowed() Decision { return Decision{Allow: true} }

// Redirect is the decision that sends the browser to target.
func Redirect(target string) Decision { return Decision{RedirectTo: target} }

// Request carries the inputs to Decide. Zone is the classification of the
// request path; AtLogin is true when the path is the login page itself.
type Request struct {
	HasToken bool
	Role     domainauth.Role
	Zone     Zone
	AtLogin  bool
}

// Decide evaluates the access rules in order, first match wins:
//
//  1. no token and a non-public zone redirects to the login page;
//  2. a token holder visiting the login page is sent to their dashboard
//     (no redirect when the role is unrecognized);
//  3. admins reach every zone;
//  4. editors reach the editor zone and public pages, otherwise bounce to
//     the editor dashboard;
//  5. seo users reach the seo zone and public pages, otherwise bounce to
//     the seo dashboard;
//  6. a token with an unrecognized role is denied outside public pages and
//     sent back to the login page.
func Decide(req Request) Decision {
	if !req.HasToken {
		if req.Zone != ZonePublic {
			return Redirect(LoginPath)
		}
		return Allowed()
	}

	if req.AtLogin {
		if dash, ok := dashboardFor(req.Role); ok {
			return Redirect(dash)
		}
	}

	switch req.Role {
	case domainauth.RoleAdmin:
		return Allowed()
	case domainauth.RoleEditor:
		if req.Zone == ZoneEditor || req.Zone == ZonePublic {
			return Allowed()
		}
		return Redirect("/editor/dashboard")
	case domainauth.RoleSEO:
		if req.Zone == ZoneSEO || req.Zone == ZonePublic {
			return Allowed()
		}
		return Redirect("/seo/dashboard")
	}

	// Unrecognized role: deny everything outside the public set.
	if req.Zone != ZonePublic {
		return Redirect(LoginPath)
	}
	return Allowed()
}

// DecidePath classifies path and evaluates the policy in one step.
func DecidePath(path string, hasToken bool, role domainauth.Role) Decision {
	return Decide(Request{
		HasToken: hasToken,
		Role:     role,
		Zone:     Classify(path),
		AtLogin:  path == LoginPath,
	})
}

// dashboardFor returns the landing page for a recognized role.
func dashboardFor(role domainauth.Role) (string, bool) {
	switch role {
	case domainauth.RoleAdmin:
		return "/admin/dashboard", true
	case domainauth.RoleEditor:
		return "/editor/dashboard", true
	case domainauth.RoleSEO:
		return "/seo/dashboard", true
	default:
		return "", false
	}
}

// DashboardFor returns the post-login landing page for a role, falling back
// to the public root for unrecognized roles.
func DashboardFor(role domainauth.Role) string {
	if dash, ok := dashboardFor(role); ok {
		return dash
	}
	return "/"
}
