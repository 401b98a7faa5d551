package config

import "time"

// AuthConfig groups token-signing configuration.
type AuthConfig struct {
	// JWTSecret is the HS256 signing secret shared with the token issuer.
	// Required for the api service.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the validity window for login tokens. The session cookie
	// max-age on the edge mirrors this value.
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"1h"`

	// BootstrapTokenTTL is the validity window for the token minted by the
	// one-time admin signup flow.
	BootstrapTokenTTL time.Duration `env:"AUTH_BOOTSTRAP_TOKEN_TTL" envDefault:"2h"`

	// Issuer is recorded in the iss claim of minted tokens.
	Issuer string `env:"AUTH_ISSUER" envDefault:"dtwin-cms"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = time.Hour
	}
	if a.BootstrapTokenTTL <= 0 {
		a.BootstrapTokenTTL = 2 * time.Hour
	}
}
