package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/evenbetter/dtwin-cms/config"
	"github.com/evenbetter/dtwin-cms/internal/bootstrap"
	"github.com/evenbetter/dtwin-cms/internal/devseed"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	cfgPtr := &cfg

	logStartupInfo(ctx, logger, cfgPtr)

	if err = bootstrap.ValidateServiceConfig(cfgPtr); err != nil {
		return err
	}

	var services bootstrap.ServiceContainer

	// The edge service is a pure gateway; only the api service touches
	// the database, the cache, and the object store.
	if cfg.IsAPIEnabled() {
		db, redisClient, infraErr := initInfrastructure(ctx, cfgPtr, logger)
		if infraErr != nil {
			return infraErr
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
		if redisClient != nil {
			defer func() {
				if cerr := redisClient.Close(); cerr != nil {
					logger.ErrorContext(ctx, "close redis failed", "error", cerr)
				}
			}()
		}

		if cfg.Postgres.RunMigrationsOnStart {
			if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
				return err
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}

		services, err = bootstrap.NewServices(&bootstrap.ServiceDeps{
			Config:      cfgPtr,
			DB:          db,
			RedisClient: redisClient,
			Logger:      logger,
		})
		if err != nil {
			return err
		}

		if cfg.IsDev {
			if err = devseed.Run(ctx, devseed.NewServices(db), logger); err != nil {
				logger.WarnContext(ctx, "dev seeding failed", "error", err)
			}
		}
	}

	return bootstrap.RunServicesWithShutdown(&bootstrap.ServiceOrchestrationConfig{
		Config:   cfgPtr,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	enabledServices := bootstrap.GetEnabledServices(cfg)
	logger.InfoContext(ctx, "starting dtwin-cms",
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"enabled_services", enabledServices)
}

// initInfrastructure connects shared dependencies used by the api runtime.
// A redis failure degrades to an uncached api instead of refusing to start.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, *redis.Client, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
			DBConfig:    cfg.Postgres,
			RedisConfig: cfg.Redis,
			Logger:      logger,
		})
		if err != nil {
			logger.WarnContext(ctx, "redis unavailable, content cache disabled", "error", err)
			redisClient = nil
		}
	}

	return db, redisClient, nil
}
