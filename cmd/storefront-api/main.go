// cmd/storefront-api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ezypc-storefront/internal/api"
	"ezypc-storefront/internal/bootstrap"
	"ezypc-storefront/internal/common/config"
	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/common/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting storefront API...",
		zap.String("environment", cfg.App.Environment),
		zap.String("genaiProvider", cfg.GenAI.Provider),
		zap.String("cacheBackend", cfg.Cache.Backend),
	)

	obs := observability.New("storefront-api")
	defer obs.Shutdown()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: "ezypc-storefront-api",
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
	})
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}

	ctx := context.Background()

	components, err := bootstrap.Build(ctx, cfg, log, true)
	if err != nil {
		zapLog.Fatal("storefront components failed", zap.Error(err))
	}
	defer components.Close()

	server := api.NewServer(api.Dependencies{
		Catalog:       components.Catalog,
		UsedParts:     components.UsedParts,
		Questions:     components.Questions,
		Observability: obs,
		Logger:        log,
	}, cfg.HTTP)

	go func() {
		if err := server.Listen(cfg.HTTP.Address); err != nil {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping HTTP server", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zapLog.Error("Error flushing traces", zap.Error(err))
	}

	zapLog.Info("Storefront API stopped gracefully")
}
