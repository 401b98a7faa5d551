package config

// UpstreamConfig points the edge proxy at the backing CRUD api.
type UpstreamConfig struct {
	// BaseURL is the base URL the edge forwards /api/* and /auth/* calls to.
	BaseURL string `env:"EDGE_UPSTREAM_URL" envDefault:"http://localhost:5000"`
}

// Sanitize applies guardrails to upstream configuration values.
func (u *UpstreamConfig) Sanitize() {
	if u.BaseURL == "" {
		u.BaseURL = "http://localhost:5000"
	}
}
