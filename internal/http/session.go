package httpx

import (
	"net/http"
	"time"

	domainauth "github.com/evenbetter/dtwin-cms/internal/domain/auth"
	"github.com/evenbetter/dtwin-cms/internal/ports"
)

// Cookie names and lifetime for the edge-visible session mirror. The max-age
// matches the backend token lifetime so both expire together.
const (
	tokenCookieName = "auth-token"
	roleCookieName  = "user-role"
	cookieMaxAge    = 3600
)

// SessionManager reads and writes the cookie pair that mirrors the bearer
// token for the edge gate. It is the only component that writes the cookies;
// the gate only reads them.
type SessionManager struct {
	verifier ports.TokenVerifier
	domain   string
	now      func() time.Time
}

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Verifier ports.TokenVerifier
	// CookieDomain scopes the cookie pair; empty means host-only cookies.
	CookieDomain string
	// Now overrides the clock; nil means time.Now. Useful in tests.
	Now func() time.Time
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	if opts.Verifier == nil {
		panic("SessionManager requires a token verifier")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionManager{verifier: opts.Verifier, domain: opts.CookieDomain, now: now}
}

// FromRequest reconstructs the session from the cookie pair. Missing cookies
// yield a zero session; cookie parsing never errors. A token whose embedded
// expiry has passed is treated as absent so a stale cookie cannot keep a
// dead session looking alive. The expiry peek does not verify the signature
// and grants nothing; the api side re-verifies every token.
func (m *SessionManager) FromRequest(r *http.Request) domainauth.Session {
	tokenCookie, err := r.Cookie(tokenCookieName)
	if err != nil || tokenCookie.Value == "" {
		return domainauth.Session{}
	}

	if exp, err := m.verifier.PeekExpiry(tokenCookie.Value); err == nil && exp.Before(m.now()) {
		return domainauth.Session{}
	}

	session := domainauth.Session{Token: tokenCookie.Value}
	if roleCookie, err := r.Cookie(roleCookieName); err == nil {
		// Unknown values pass through; the access policy denies them.
		session.Role, _ = domainauth.ParseRole(roleCookie.Value)
	}
	return session
}

// Write sets both cookies for a fresh login.
func (m *SessionManager) Write(w http.ResponseWriter, token string, role domainauth.Role) {
	http.SetCookie(w, &http.Cookie{
		Name:   tokenCookieName,
		Value:  token,
		Path:   "/",
		Domain: m.domain,
		MaxAge: cookieMaxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:   roleCookieName,
		Value:  string(role),
		Path:   "/",
		Domain: m.domain,
		MaxAge: cookieMaxAge,
	})
}

// Clear expires both cookies. Safe to call on an already logged-out request.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	for _, name := range []string{tokenCookieName, roleCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:    name,
			Value:   "",
			Path:    "/",
			Domain:  m.domain,
			MaxAge:  -1,
			Expires: time.Unix(0, 0),
		})
	}
}
