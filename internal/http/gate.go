package httpx

import (
	"net/http"
	"strings"

	"github.com/evenbetter/dtwin-cms/internal/domain/access"
)

// gatePrefixExclusions are path subtrees the gate never inspects: backend
// routes enforce their own per-endpoint authorization, and static assets are
// public by definition. Matching is segment-aware like the policy's zone
// prefixes.
var gatePrefixExclusions = []string{"/api", "/auth", "/session", "/static", "/preview"}

// Gate returns the edge middleware that enforces the access policy on every
// page route. It reads the session cookies, classifies the path, and either
// passes the request through or redirects. It performs no I/O and never
// writes cookies.
func Gate(sessions *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gateExcluded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			session := sessions.FromRequest(r)
			decision := access.DecidePath(r.URL.Path, session.Authenticated(), session.Role)
			if decision.Allow {
				next.ServeHTTP(w, r)
				return
			}

			http.Redirect(w, r, decision.RedirectTo, http.StatusTemporaryRedirect)
		})
	}
}

// gateExcluded reports whether the gate skips this path entirely.
func gateExcluded(path string) bool {
	for _, prefix := range gatePrefixExclusions {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return path == "/favicon.ico"
}
