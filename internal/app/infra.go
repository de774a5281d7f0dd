package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/omidvesal/intake_backend/config"
	"github.com/omidvesal/intake_backend/internal/model"
	"github.com/omidvesal/intake_backend/pkg/blob"
	"github.com/omidvesal/intake_backend/pkg/database"
	"github.com/omidvesal/intake_backend/pkg/email"
	"github.com/omidvesal/intake_backend/pkg/observability"
	redispkg "github.com/omidvesal/intake_backend/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideDatabaseHandle),
	fx.Provide(ProvideBlobStore),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideNatsClient),
)

func ProvideDatabaseHandle(lc fx.Lifecycle, cfg *config.Config) *database.Handle {
	handle := database.NewHandle(database.FromCentralConfig(cfg.Database))
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !cfg.Database.Migrations.AutoMigrate {
				return nil
			}
			slog.Info("running schema auto-migration")
			return handle.AutoMigrate(ctx, MigrationModels(cfg)...)
		},
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return handle.Close()
		},
	})
	return handle
}

// MigrationModels lists every model the schema needs. The blob tables are
// only created when the chunked Postgres store is the active backend.
func MigrationModels(cfg *config.Config) []any {
	models := []any{&model.Submission{}}
	if blob.FromCentralConfig(cfg.Blob).Backend == blob.BackendPostgres {
		models = append(models, blob.Models()...)
	}
	return models
}

func ProvideBlobStore(cfg *config.Config, handle *database.Handle) (blob.Store, error) {
	bcfg := blob.FromCentralConfig(cfg.Blob)
	switch bcfg.Backend {
	case blob.BackendS3:
		return blob.NewS3Store(cfg.S3)
	case blob.BackendPostgres:
		return blob.NewPostgresStore(handle, bcfg), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", bcfg.Backend)
	}
}

// ProvideRedis dials Redis when an address is configured; without one the
// rate limiter is simply not installed.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr == "" {
		return nil, nil
	}
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

// ProvideNatsClient connects only when event publication is switched on.
func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if !cfg.Notifications.Events.Enabled || cfg.Nats.URL == "" {
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.Config{
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		Environment:    cfg.Server.Environment,
		OTLPEndpoint:   cfg.Observability.Tracing.OTLPEndpoint,
		OTLPInsecure:   cfg.Observability.Tracing.OTLPInsecure,
		SamplingRate:   cfg.Observability.Tracing.SamplingRate,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}
