package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/roster-solver/internal/api/http"
	"github.com/spec-kit/roster-solver/internal/api/http/handlers"
	"github.com/spec-kit/roster-solver/internal/config"
	"github.com/spec-kit/roster-solver/internal/events"
	"github.com/spec-kit/roster-solver/internal/observability"
	"github.com/spec-kit/roster-solver/internal/persistence"
	"github.com/spec-kit/roster-solver/internal/repository"
	"github.com/spec-kit/roster-solver/internal/service"
	"github.com/spec-kit/roster-solver/internal/solver"
	"github.com/spec-kit/roster-solver/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting roster solver",
		zap.String("version", cfg.App.Version),
		zap.String("strategy", cfg.Solver.Strategy))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var runRepo repository.SolveRunRepository
	if pool := pg.PoolHandle(); pool != nil {
		runRepo = repository.NewSolveRunRepository(pool)
	} else {
		logger.Warn("solve history disabled; no postgres pool")
	}

	dispatcher := events.NewInMemoryDispatcher()

	engine := solver.NewEngine(logger)
	selector := solver.NewSelector(engine, logger)

	solveService := service.NewSolveService(cfg.Solver, service.SolveDependencies{
		Selector:   selector,
		RunRepo:    runRepo,
		Cache:      redis,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Solver.Strategy, pg, redis)
	solveHandler := handlers.NewSolveHandler(solveService)
	rostersHandler := handlers.NewRostersHandler(solveService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  healthHandler,
		Solve:   solveHandler,
		Rosters: rostersHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
