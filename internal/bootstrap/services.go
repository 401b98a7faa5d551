package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/evenbetter/dtwin-cms/config"
	"github.com/evenbetter/dtwin-cms/internal/adapters/jwtauth"
	"github.com/evenbetter/dtwin-cms/internal/adapters/password"
	"github.com/evenbetter/dtwin-cms/internal/adapters/storage"
	"github.com/evenbetter/dtwin-cms/internal/core"
	"github.com/evenbetter/dtwin-cms/internal/data"
	"github.com/evenbetter/dtwin-cms/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth    *service.AuthService
	Content *service.ContentService
	Blogs   *service.BlogService
	Images  *service.ImageService

	// Tokens signs and verifies bearer tokens; the router's role gates
	// verify against it.
	Tokens *jwtauth.Signer
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient *redis.Client
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	UserRepo    *data.UserRepo
	ContentRepo *data.ContentRepo
	BlogRepo    *data.BlogRepo
	CacheRepo   *data.RedisCacheRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient *redis.Client) *serviceRepositories {
	repos := &serviceRepositories{
		UserRepo:    data.NewUserRepo(db),
		ContentRepo: data.NewContentRepo(db),
		BlogRepo:    data.NewBlogRepo(db),
	}
	if redisClient != nil {
		repos.CacheRepo = data.NewRedisCacheRepo(redisClient)
	}
	return repos
}

func newAuthService(repos *serviceRepositories, tokens *jwtauth.Signer, cfg config.AuthConfig) *service.AuthService {
	return service.NewAuthService(service.AuthServiceOptions{
		Users: repos.UserRepo,
		Crypto: service.AuthCrypto{
			Hasher: password.NewBcryptHasher(),
			Tokens: tokens,
		},
		Config: service.AuthServiceConfig{
			TokenTTL:          cfg.TokenTTL,
			BootstrapTokenTTL: cfg.BootstrapTokenTTL,
		},
	})
}

func newContentService(repos *serviceRepositories, cfg config.CacheConfig, logger *slog.Logger) *service.ContentService {
	var cache core.CacheRepository
	if cfg.Enabled && repos.CacheRepo != nil {
		cache = repos.CacheRepo
	}
	return service.NewContentService(service.ContentServiceOptions{
		Repo:  repos.ContentRepo,
		Cache: cache,
		Config: service.ContentServiceConfig{
			CacheTTL: cfg.TTL,
			Logger:   logger,
		},
	})
}

func newImageService(cfg config.StorageConfig) (*service.ImageService, error) {
	store, err := storage.NewBucketClient(storage.Config{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Bucket:  cfg.Bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("storage configuration: %w", err)
	}
	return service.NewImageService(service.ImageServiceOptions{Store: store}), nil
}

// NewServices wires the service graph for the api (CRUD backend) service.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if deps.Config.Auth.JWTSecret == "" {
		return ServiceContainer{}, errors.New("JWT_SECRET is required")
	}
	tokens := jwtauth.NewSigner(jwtauth.Options{
		Secret: deps.Config.Auth.JWTSecret,
		Issuer: deps.Config.Auth.Issuer,
	})

	repos := buildRepositories(deps.DB, deps.RedisClient)

	images, err := newImageService(deps.Config.Storage)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth:    newAuthService(repos, tokens, deps.Config.Auth),
		Content: newContentService(repos, deps.Config.Cache, logger),
		Blogs:   service.NewBlogService(service.BlogServiceOptions{Repo: repos.BlogRepo}),
		Images:  images,
		Tokens:  tokens,
	}, nil
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for servers to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a server fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	if enabledServices[config.ServiceModeAPI] {
		server := NewAPIServer(&APIServerConfig{
			Config:   cfg.Config,
			Services: cfg.Services,
			Logger:   logger,
		})
		runServer(groupCtx, group, server, "api", logger)
	}

	if enabledServices[config.ServiceModeEdge] {
		server, buildErr := NewEdgeServer(&EdgeServerConfig{
			Config: cfg.Config,
			Logger: logger,
		})
		if buildErr != nil {
			return fmt.Errorf("build edge server: %w", buildErr)
		}
		runServer(groupCtx, group, server, "edge", logger)
	}

	if waitErr := group.Wait(); waitErr != nil {
		logger.Error("service error", "error", waitErr)
		return waitErr
	}

	logger.Info("all services stopped")
	return nil
}

// runServer serves on one goroutine and shuts down on another when the
// group context is cancelled, either by a signal or by a sibling failure.
func runServer(ctx context.Context, group *errgroup.Group, server *http.Server, name string, logger *slog.Logger) {
	group.Go(func() error {
		logger.Info("starting HTTP server", "service", name, "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server failed: %w", name, err)
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down HTTP server", "service", name)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown %s server: %w", name, err)
		}
		logger.Info("HTTP server stopped", "service", name)
		return nil
	})
}
