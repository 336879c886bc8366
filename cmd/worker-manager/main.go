// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ezypc-storefront/internal/bootstrap"
	"ezypc-storefront/internal/common/camunda"
	"ezypc-storefront/internal/common/config"
	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/common/observability"

	pcr "ezypc-storefront/internal/workers/recommendation/pc-recommendation"
	pp "ezypc-storefront/internal/workers/recommendation/popular-products"
	sp "ezypc-storefront/internal/workers/recommendation/similar-products"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: "ezypc-worker-manager",
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
	})
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Storefront components (cache, gateway, registry) with retry ---
	var components *bootstrap.Components
	err = retryWithBackoff(func() error {
		var err error
		components, err = bootstrap.Build(ctx, cfg, log, false)
		return err
	}, 10, 2*time.Second, zapLog, "Storefront component initialization")
	if err != nil {
		zapLog.Fatal("storefront components failed after retries", zap.Error(err))
	}
	defer components.Close()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully", zap.String("address", cfg.Camunda.BrokerAddress))

	var workers []*camunda.CamundaWorker
	start := func(taskType string, handler camunda.HandlerFunc) {
		if w := camunda.NewWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handler, obs, log); w != nil {
			workers = append(workers, w)
		}
	}

	// Popular Products
	{
		handler, err := pp.NewHandler(pp.HandlerOptions{
			AppConfig: cfg,
			Service:   components.Catalog,
			Logger:    log,
		})
		if err != nil {
			zapLog.Fatal("failed to create popular-products handler", zap.Error(err))
		}
		start(pp.TaskType, handler.Handle)
	}

	// PC Recommendation
	{
		handler, err := pcr.NewHandler(pcr.HandlerOptions{
			AppConfig: cfg,
			Service:   components.Catalog,
			Questions: components.Questions,
			Logger:    log,
		})
		if err != nil {
			zapLog.Fatal("failed to create pc-recommendation handler", zap.Error(err))
		}
		start(pcr.TaskType, handler.Handle)
	}

	// Similar Products
	{
		handler, err := sp.NewHandler(sp.HandlerOptions{
			AppConfig: cfg,
			Service:   components.Catalog,
			Logger:    log,
		})
		if err != nil {
			zapLog.Fatal("failed to create similar-products handler", zap.Error(err))
		}
		start(sp.TaskType, handler.Handle)
	}
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		status, code := "ready", http.StatusOK
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	healthServer := &http.Server{Addr: cfg.Camunda.HealthAddress, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Camunda.HealthAddress))
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		zapLog.Error("Error flushing traces", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
