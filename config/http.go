package config

// HTTPConfig contains api server configuration.
type HTTPConfig struct {
	// Addr is the address the api (CRUD backend) server binds to.
	Addr string `env:"HTTP_ADDR" envDefault:":5000"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":5000"
	}
}

// EdgeConfig contains edge (dashboard gateway) server configuration.
type EdgeConfig struct {
	// Addr is the address the edge server binds to.
	Addr string `env:"EDGE_ADDR" envDefault:":3000"`

	// CookieDomain is the domain for the auth-token and user-role cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"EDGE_COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to edge configuration values.
func (e *EdgeConfig) Sanitize() {
	if e.Addr == "" {
		e.Addr = ":3000"
	}
}
