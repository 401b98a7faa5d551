package config

import "time"

// DBConfig contains PostgreSQL connection configuration.
type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"dtwin"`
	Password string `env:"PASSWORD" envDefault:"dtwin"`
	Name     string `env:"NAME" envDefault:"dtwin_cms"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`

	// RunMigrationsOnStart applies embedded migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	// URI is either a host:port pair or a redis:// / rediss:// URL.
	URI      string `env:"URI" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
}

// CacheConfig controls the Redis-backed website-content cache.
type CacheConfig struct {
	// Enabled toggles the read-through cache for content sections.
	Enabled bool `env:"CONTENT_CACHE_ENABLED" envDefault:"true"`

	// TTL is how long cached section payloads live before expiry.
	TTL time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
}
