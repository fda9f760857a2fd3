package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	dashboardHttp "dashboard-analytics-service/internal/dashboard/adapters/http/fiber"
	dashboardRepoPg "dashboard-analytics-service/internal/dashboard/adapters/postgres"
	"dashboard-analytics-service/internal/dashboard/core/analytics"
	"dashboard-analytics-service/internal/dashboard/core/usecase"
	logsHttp "dashboard-analytics-service/internal/executionlogs/adapters/http/fiber"
	logsRepoPg "dashboard-analytics-service/internal/executionlogs/adapters/postgres"
	logsUsecase "dashboard-analytics-service/internal/executionlogs/core/usecase"
	"dashboard-analytics-service/internal/log"
	"dashboard-analytics-service/internal/metrics"

	_ "dashboard-analytics-service/docs"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP API",
	Long: `Start the HTTP API backed by the postgres feed store.

Routes:
  GET  /dashboard            snapshot over the stored feeds
  POST /dashboard/snapshot   snapshot over feeds in the request body
  POST /logs, /logs/bulk     ingest execution log entries
  GET  /metrics              prometheus metrics
  GET  /docs/*               swagger UI`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	initLogging(cfg, cmd)
	logger := log.WithComponent("server")

	if cfg.DB.DSN == "" {
		return fmt.Errorf("db.dsn is not set (DASHBOARD_DB_DSN)")
	}

	// DB connection
	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := db.PingContext(cmd.Context()); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	// Repositories
	feedRepository := dashboardRepoPg.NewFeedRepository(dashboardRepoPg.NewSQLDB(db))
	logRepository := logsRepoPg.NewLogRepository(db)

	// Usecases
	engine := analytics.NewEngine(engineOptions(cfg))
	getDashboardUC := usecase.NewGetDashboardUseCase(feedRepository, engine, cfg.Dashboard.LogLookback)
	computeSnapshotUC := usecase.NewComputeSnapshotUseCase(engine)
	storeLogUC := logsUsecase.NewStoreLogUseCase(logRepository)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	dashboardHandler := dashboardHttp.NewDashboardHandler(getDashboardUC, computeSnapshotUC)
	app.Get("/dashboard", dashboardHandler.GetDashboard)
	app.Post("/dashboard/snapshot", dashboardHandler.ComputeSnapshot)

	logHandler := logsHttp.NewLogHandler(storeLogUC)
	app.Post("/logs", logHandler.CreateLog)
	app.Post("/logs/bulk", logHandler.BulkCreateLogs)

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logger.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logger.Info().Str("addr", cfg.Server.Addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("fiber shutdown error")
	}

	logger.Info().Msg("server exiting")
	return nil
}
