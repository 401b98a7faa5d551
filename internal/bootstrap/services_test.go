package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenbetter/dtwin-cms/config"
)

func testServiceDeps(t *testing.T) *ServiceDeps {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return &ServiceDeps{
		Config: &config.AppConfig{
			Auth: config.AuthConfig{JWTSecret: "test-secret"},
			Storage: config.StorageConfig{
				BaseURL: "https://store.test",
				APIKey:  "key",
				Bucket:  "cms-images",
			},
			Cache: config.CacheConfig{Enabled: true},
		},
		DB:          db,
		RedisClient: client,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewServices_WiresFullGraph(t *testing.T) {
	services, err := NewServices(testServiceDeps(t))
	require.NoError(t, err)

	assert.NotNil(t, services.Auth)
	assert.NotNil(t, services.Content)
	assert.NotNil(t, services.Blogs)
	assert.NotNil(t, services.Images)
	assert.NotNil(t, services.Tokens)
}

func TestNewServices_RequiresJWTSecret(t *testing.T) {
	deps := testServiceDeps(t)
	deps.Config.Auth.JWTSecret = ""

	_, err := NewServices(deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewServices_RequiresStorage(t *testing.T) {
	deps := testServiceDeps(t)
	deps.Config.Storage.BaseURL = ""

	_, err := NewServices(deps)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage")
}

func TestNewAPIServer(t *testing.T) {
	deps := testServiceDeps(t)
	deps.Config.HTTP.Addr = ":5001"
	services, err := NewServices(deps)
	require.NoError(t, err)

	server := NewAPIServer(&APIServerConfig{
		Config:   deps.Config,
		Services: services,
		Logger:   deps.Logger,
	})
	require.NotNil(t, server)
	assert.Equal(t, ":5001", server.Addr)
	assert.NotNil(t, server.Handler)
}

func TestNewEdgeServer(t *testing.T) {
	cfg := &config.AppConfig{
		Auth:     config.AuthConfig{JWTSecret: "test-secret"},
		Edge:     config.EdgeConfig{Addr: ":3001"},
		Upstream: config.UpstreamConfig{BaseURL: "http://localhost:5000"},
	}

	server, err := NewEdgeServer(&EdgeServerConfig{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, ":3001", server.Addr)
	assert.NotNil(t, server.Handler)
}

func TestNewEdgeServer_RequiresUpstream(t *testing.T) {
	cfg := &config.AppConfig{
		Auth: config.AuthConfig{JWTSecret: "test-secret"},
	}

	_, err := NewEdgeServer(&EdgeServerConfig{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream")
}
