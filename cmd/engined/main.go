package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aeroops/diversion-engine/internal/adapter/airports"
	httpadapter "github.com/aeroops/diversion-engine/internal/adapter/http"
	kafkaadapter "github.com/aeroops/diversion-engine/internal/adapter/kafka"
	"github.com/aeroops/diversion-engine/internal/config"
	"github.com/aeroops/diversion-engine/internal/domain"
	"github.com/aeroops/diversion-engine/internal/observability"
	"github.com/aeroops/diversion-engine/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	policy, err := cfg.Policy()
	if err != nil {
		logger.Error("invalid decision policy", "error", err)
		os.Exit(1)
	}

	engine := domain.NewEngine(domain.DefaultCatalog(), policy, logger)

	// Airport lookup is feature-flagged via AIRPORTS_ENABLED / AIRPORTS_TOKEN.
	// Without it, requests must carry their own candidate lists.
	var source domain.AirportSource
	if cfg.AirportsEnabled {
		client := airports.NewClient(cfg.AirportsBaseURL, cfg.AirportsToken, cfg.AirportsTimeout, logger)
		source = airports.NewCachedSource(client, cfg.AirportsCacheSize)
		metrics.AirportSourceEnabled.Set(1)
		logger.Info("airport lookup enabled",
			"cache_size", cfg.AirportsCacheSize,
			"radius_nm", cfg.AirportsRadiusNm,
			"timeout", cfg.AirportsTimeout)
	} else {
		logger.Info("airport lookup disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(engine, source, cfg.AirportsRadiusNm, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, engine, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the decision pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
