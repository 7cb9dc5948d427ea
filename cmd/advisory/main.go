package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/Advisory/internal/api"
	"github.com/MikeSquared-Agency/Advisory/internal/capacity"
	"github.com/MikeSquared-Agency/Advisory/internal/config"
	"github.com/MikeSquared-Agency/Advisory/internal/hermes"
	"github.com/MikeSquared-Agency/Advisory/internal/metrics"
	"github.com/MikeSquared-Agency/Advisory/internal/pipeline"
	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
	"github.com/MikeSquared-Agency/Advisory/internal/simulation"
	"github.com/MikeSquared-Agency/Advisory/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger = newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tender store: Postgres when configured, in-memory otherwise
	var db store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		db = pg
		logger.Info("connected to database")
	} else {
		db = store.NewMemoryStore()
		logger.Info("no database configured, tenders are kept in memory")
	}
	defer db.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	collector, err := metrics.New(nil)
	if err != nil {
		logger.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	// Capacity, optionally refreshed from the resource planner
	var plannerClient capacity.Client
	if cfg.Capacity.ResourceURL != "" {
		plannerClient = capacity.NewHTTPClient(cfg.Capacity.ResourceURL, cfg.Capacity.ResourceToken)
	}
	capacityProvider := capacity.NewProvider(cfg.ScoringCapacity(), plannerClient, logger)

	evaluator := scoring.NewEvaluator(nil, logger)
	projector := simulation.NewProjector(nil)

	// Tender pipeline
	p := pipeline.New(db, hermesClient, evaluator, capacityProvider, collector, cfg, logger)
	if err := p.SetupSubscriptions(); err != nil {
		logger.Warn("failed to subscribe to tender intake", "error", err)
	}
	if cfg.Watcher.Enabled {
		p.Start(ctx)
		defer p.Stop()
		logger.Info("deadline watcher started", "tick_interval", cfg.TickInterval(), "concurrency", cfg.Watcher.Concurrency)
	}

	// API server
	router := api.NewRouter(db, hermesClient, p, evaluator, capacityProvider, projector, collector, cfg, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
