package http

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/omidvesal/intake_backend/config"
	"github.com/omidvesal/intake_backend/internal/api/http/middleware"
	"github.com/omidvesal/intake_backend/internal/api/http/router"
	"github.com/omidvesal/intake_backend/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

const defaultBodyLimitMB = 8

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Redis     *redis.Client           `optional:"true"`
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	// The body limit must leave room for the largest accepted resume plus the
	// multipart framing; oversize bodies are cut off here before the handler
	// ever runs.
	bodyLimitMB := p.Cfg.Server.BodyLimitMB
	if bodyLimitMB <= 0 {
		bodyLimitMB = defaultBodyLimitMB
	}

	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimitMB << 20,
	})

	if p.OTel != nil && p.Cfg.Observability.Tracing.Enabled {
		app.Use(observability.FiberMiddleware(p.Cfg.Observability.ServiceName))
	}

	configureGlobalMiddleware(app, p.Cfg, p.Redis)

	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				if err := app.Listen(addr); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	// The form endpoints are called from third-party sites, so CORS is always
	// on; an empty allow_origins list means any origin.
	app.Use(cors.New(corsConfig(cfg.Server.CORS)))

	if cfg.Server.Environment == "production" {
		app.Use(helmet.New())
		if rdb != nil {
			app.Use(middleware.NewLimiterWithRedis(rdb))
		}
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${requestId}] ${method} ${url} ${status}\n",
	}))
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
	}
	if len(out.AllowOrigins) == 0 {
		// Credentials cannot be combined with the wildcard origin.
		out.AllowOrigins = []string{"*"}
		out.AllowCredentials = false
	}
	if cfg.MaxAgeSeconds > 0 {
		out.MaxAge = cfg.MaxAgeSeconds
	}
	return out
}
