package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/omidvesal/intake_backend/config"
	"github.com/omidvesal/intake_backend/internal/api/http/handler"
	"github.com/omidvesal/intake_backend/internal/service/submission"
	"github.com/omidvesal/intake_backend/pkg/database"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg           *config.Config
	DB            *database.Handle
	SubmissionSvc submission.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Handlers
	healthH := handler.NewHealthHandler(r.p.Cfg.Server.Environment)
	submissionH := handler.NewSubmissionHandler(r.p.SubmissionSvc)
	resumeH := handler.NewResumeHandler(r.p.SubmissionSvc)

	app.Get("/", healthH.Status)

	api := app.Group("/api")

	// 3. Delegate to sub-files
	r.registerSubmissionRoutes(api, submissionH)
	r.registerResumeRoutes(api, resumeH)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			if err := r.p.DB.Ping(c.Context()); err == nil {
				return true
			}
			// One reconnect attempt before reporting unready.
			return r.p.DB.Reacquire(c.Context()) == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
