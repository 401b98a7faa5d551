package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/evenbetter/dtwin-cms/config"
	"github.com/evenbetter/dtwin-cms/internal/adapters/jwtauth"
	"github.com/evenbetter/dtwin-cms/internal/adapters/upstream"
	httpx "github.com/evenbetter/dtwin-cms/internal/http"
)

// APIServerConfig contains configuration for the api HTTP server.
type APIServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// NewAPIServer builds the api (CRUD backend) HTTP server. The router wires
// its own logging and recovery middleware.
func NewAPIServer(cfg *APIServerConfig) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Auth:     cfg.Services.Auth,
		Content:  cfg.Services.Content,
		Blogs:    cfg.Services.Blogs,
		Images:   cfg.Services.Images,
		Verifier: cfg.Services.Tokens,
		Logger:   logger,
	})

	return newServer(cfg.Config.HTTP.Addr, handler)
}

// EdgeServerConfig contains configuration for the edge HTTP server.
type EdgeServerConfig struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// NewEdgeServer builds the edge (dashboard gateway) HTTP server: the access
// gate over page routes, the session cookie endpoints, and the backend proxy.
func NewEdgeServer(cfg *EdgeServerConfig) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Config.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	verifier := jwtauth.NewSigner(jwtauth.Options{
		Secret: cfg.Config.Auth.JWTSecret,
		Issuer: cfg.Config.Auth.Issuer,
	})

	client, err := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Config.Upstream.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("upstream configuration: %w", err)
	}

	handler := httpx.NewEdgeRouter(httpx.EdgeServices{
		Sessions: httpx.NewSessionManager(httpx.SessionManagerOptions{
			Verifier:     verifier,
			CookieDomain: cfg.Config.Edge.CookieDomain,
		}),
		Upstream: client,
		Logger:   logger,
	})

	return newServer(cfg.Config.Edge.Addr, handler), nil
}

func newServer(addr string, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
