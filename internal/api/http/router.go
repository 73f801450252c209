package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/roster-solver/internal/api/http/handlers"
	"github.com/spec-kit/roster-solver/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Solve   *handlers.SolveHandler
	Rosters *handlers.RostersHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(observability.Registry, promhttp.HandlerOpts{})))

	solveGroup := app.Group("/solve")
	solveGroup.Post("/greedy", cfg.Solve.SolveGreedy)
	solveGroup.Post("/sequential", cfg.Solve.SolveSequential)
	solveGroup.Post("/cpsat", cfg.Solve.SolveCPSAT)

	rosterGroup := app.Group("/rosters")
	rosterGroup.Get("/", cfg.Rosters.ListRecent)
	rosterGroup.Get("/:id", cfg.Rosters.GetRoster)
}
