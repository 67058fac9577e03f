// cmd/worker-manager/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"infraiq-workers/internal/api"
	"infraiq-workers/internal/common/aws"
	"infraiq-workers/internal/common/camunda"
	"infraiq-workers/internal/common/config"
	"infraiq-workers/internal/common/database"
	"infraiq-workers/internal/common/logger"
	"infraiq-workers/internal/common/observability"
	"infraiq-workers/pkg/registry"

	// Assessment Workers (3)
	bar "infraiq-workers/internal/workers/assessment/build-assessment-report"
	cms "infraiq-workers/internal/workers/assessment/calculate-maturity-score"
	vas "infraiq-workers/internal/workers/assessment/validate-assessment-response"

	// Communication Workers (2)
	npa "infraiq-workers/internal/workers/communication/notify-priority-assessment"
	sar "infraiq-workers/internal/workers/communication/send-assessment-report"
)

const activityRegistryPath = "configs/activity-registry.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting worker manager...", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs := observability.New(cfg.Observability, prometheus.DefaultRegisterer, log)

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	zeebe, err := camunda.Connect(ctx, camunda.ConfigFrom(cfg.Camunda), log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	log.Info("Zeebe client connected successfully", nil)

	readyChecks := map[string]api.ReadyCheck{
		"zeebe": zeebe.HealthCheck,
	}

	// --- Init Redis (rate limiter) ---
	var limiter *api.RateLimiter
	var redis *database.RedisClient
	if cfg.RateLimit.Enabled {
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis client failed", zap.Error(err))
		}
		if err := redis.Ping(ctx); err != nil {
			// Limiter fails open while Redis is down.
			log.Warn("redis unreachable at startup", map[string]interface{}{"error": err.Error()})
		}
		limiter = api.NewRateLimiter(
			redis,
			cfg.RateLimit.Requests,
			config.GetDuration(cfg.RateLimit.Window),
			cfg.RateLimit.KeyPrefix,
			log,
		)
		readyChecks["redis"] = redis.Ping
	}

	// --- Init AWS clients ---
	var sesAPI aws.SESAPI
	if cfg.Integrations.AWS.SES.Enabled && cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
		sesAPI = sesClient
	}

	var snsAPI aws.SNSAPI
	if cfg.Integrations.AWS.SNS.Enabled && cfg.Notifications.Priority.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		snsAPI = snsClient
	}

	// --- Register workers ---
	catalog := loadActivityRegistry(activityRegistryPath, log)
	workers := camunda.NewRegistry(zeebe.GetClient(), log)
	if err := registerWorkers(cfg, workers, obs, catalog, sesAPI, snsAPI, log); err != nil {
		zapLog.Fatal("worker registration failed", zap.Error(err))
	}
	log.Info("workers registered", map[string]interface{}{"taskTypes": workers.TaskTypes()})
	checkActivityRegistry(catalog, workers.TaskTypes(), log)

	// --- HTTP API, health & metrics ---
	server := api.NewServer(api.Options{
		Weights:      cfg.Scoring.Weights,
		MaxBodyBytes: int64(cfg.Server.MaxBodyBytes),
		Limiter:      limiter,
		ReadyChecks:  readyChecks,
		Gatherer:     prometheus.DefaultGatherer,
		Obs:          obs,
		Logger:       log,
	})
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Routes(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"addr": httpServer.Addr})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutdown signal received, stopping workers...", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping HTTP server", map[string]interface{}{"error": err.Error()})
	}
	workers.Close()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error flushing telemetry", map[string]interface{}{"error": err.Error()})
	}
	if redis != nil {
		if err := redis.Close(); err != nil {
			log.Error("Error closing Redis client", map[string]interface{}{"error": err.Error()})
		}
	}
	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Worker manager stopped", nil)
}

func registerWorkers(
	cfg *config.Config,
	workers *camunda.Registry,
	obs *observability.Observability,
	catalog *registry.ActivityRegistry,
	sesAPI aws.SESAPI,
	snsAPI aws.SNSAPI,
	log logger.Logger,
) error {
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	// --- 1. Assessment Workers (3) ---
	if config.IsWorkerEnabled(cfg, vas.TaskType) {
		vasCfg := &vas.Config{Timeout: timeout(vas.TaskType)}
		if catalog != nil {
			if activity, ok := catalog.Find(vas.TaskType); ok {
				vasCfg.Contract = activity
			}
		}
		handler, err := vas.NewHandler(vasCfg, obs, log)
		if err != nil {
			return fmt.Errorf("%s: %w", vas.TaskType, err)
		}
		workers.Start(vas.TaskType, config.GetWorkerConfig(cfg, vas.TaskType), handler)
	}

	if config.IsWorkerEnabled(cfg, cms.TaskType) {
		handler, err := cms.NewHandler(&cms.Config{
			Weights: cfg.Scoring.Weights,
			Timeout: timeout(cms.TaskType),
		}, obs, log)
		if err != nil {
			return fmt.Errorf("%s: %w", cms.TaskType, err)
		}
		workers.Start(cms.TaskType, config.GetWorkerConfig(cfg, cms.TaskType), handler)
	}

	if config.IsWorkerEnabled(cfg, bar.TaskType) {
		handler := bar.NewHandler(&bar.Config{
			Weights: cfg.Scoring.Weights,
			Timeout: timeout(bar.TaskType),
		}, obs, log)
		workers.Start(bar.TaskType, config.GetWorkerConfig(cfg, bar.TaskType), handler)
	}

	// --- 2. Communication Workers (2) ---
	if config.IsWorkerEnabled(cfg, sar.TaskType) {
		handler, err := sar.NewHandler(&sar.Config{
			Enabled:          sesAPI != nil,
			FromEmail:        cfg.SenderAddress(),
			ReplyTo:          cfg.Notifications.Email.ReplyTo,
			ConfigurationSet: cfg.Integrations.AWS.SES.ConfigurationSet,
			Timeout:          timeout(sar.TaskType),
		}, sesAPI, log)
		if err != nil {
			return fmt.Errorf("%s: %w", sar.TaskType, err)
		}
		workers.Start(sar.TaskType, config.GetWorkerConfig(cfg, sar.TaskType), handler)
	}

	if config.IsWorkerEnabled(cfg, npa.TaskType) {
		handler, err := npa.NewHandler(&npa.Config{
			Enabled:   snsAPI != nil,
			TopicARN:  cfg.Integrations.AWS.SNS.TopicARN,
			Threshold: cfg.Notifications.Priority.Threshold,
			Timeout:   timeout(npa.TaskType),
		}, snsAPI, log)
		if err != nil {
			return fmt.Errorf("%s: %w", npa.TaskType, err)
		}
		workers.Start(npa.TaskType, config.GetWorkerConfig(cfg, npa.TaskType), handler)
	}

	return nil
}

// loadActivityRegistry reads the activity catalog. A missing or invalid
// catalog is logged, never fatal.
func loadActivityRegistry(path string, log logger.Logger) *registry.ActivityRegistry {
	catalog, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry not loaded", map[string]interface{}{"path": path, "error": err.Error()})
		return nil
	}
	if err := catalog.Validate(); err != nil {
		log.Warn("activity registry invalid", map[string]interface{}{"path": path, "error": err.Error()})
		return nil
	}
	return catalog
}

// checkActivityRegistry warns about running workers the catalog does not describe.
func checkActivityRegistry(catalog *registry.ActivityRegistry, taskTypes []string, log logger.Logger) {
	if catalog == nil {
		return
	}
	for _, taskType := range catalog.Missing(taskTypes) {
		log.Warn("worker has no activity registry entry", map[string]interface{}{"taskType": taskType})
	}
}
