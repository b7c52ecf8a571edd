package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/sensor-stats/internal/api/http"
	"github.com/i474232898/sensor-stats/internal/config"
	"github.com/i474232898/sensor-stats/internal/dataset"
	"github.com/i474232898/sensor-stats/internal/logging"
	"github.com/i474232898/sensor-stats/internal/scheduler"
	"github.com/i474232898/sensor-stats/internal/sensors"
	"github.com/i474232898/sensor-stats/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "json", os.Stderr).Fatal("failed to load config", "error", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	// Dataset and result cache, owned by the service for the process lifetime.
	loader := dataset.NewFileLoader(cfg.DataFile, logger)
	cache := store.NewMemoryCache()
	service := sensors.NewService(loader, cache, logger)

	// Load before accepting traffic; a schema problem stops the process here.
	if err := service.Warm(context.Background()); err != nil {
		logger.Fatal("failed to load dataset", "file", cfg.DataFile, "error", err)
	}

	sched := scheduler.New(cfg.ReportInterval, cache, service, logger)
	if err := sched.Start(); err != nil {
		logger.Fatal("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "sensor-stats",
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowMethods:  "*",
		AllowHeaders:  "*",
		ExposeHeaders: httpapi.CacheHeader + "," + logging.RequestIDHeader,
	}))
	app.Use(logging.FiberMiddleware(logger))

	httpapi.RegisterRoutes(app, service)

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
