package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/joho/godotenv"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/api"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/config"
	"github.com/planeteye-farm-ai/bridge-inspection-report-backend/internal/db"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("starting bridge inspection server",
		slog.String("version", version),
		slog.String("buildTime", buildTime),
		slog.String("addr", cfg.Addr),
		slog.String("environment", cfg.Environment),
	)

	ctx := context.Background()

	// Open database connection; an unreachable datastore is not fatal
	conn, err := db.New(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("failed to open database", slog.Any("err", err))
		os.Exit(1)
	}

	// Lenient bootstrap: a failed schema init is logged and the process
	// keeps serving. Data-dependent requests will fail until the schema
	// exists; /health makes the condition visible.
	if err := db.Bootstrap(ctx, conn); err != nil {
		logger.Error("schema bootstrap failed, continuing anyway", slog.Any("err", err))
	}

	handler := api.SetupRoutes(cfg, version, buildTime, conn)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", slog.Any("err", err))
	}

	// Close database connection
	if err := conn.Close(); err != nil {
		logger.Error("error closing database", slog.Any("err", err))
	}

	logger.Info("server exited")
}
