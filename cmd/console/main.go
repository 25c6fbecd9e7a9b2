package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryHTTP "github.com/lavamax/console/internal/delivery/http"
	"github.com/lavamax/console/internal/pkg/config"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/lavamax/console/internal/pkg/redis"
	"github.com/lavamax/console/internal/records"
	"github.com/lavamax/console/internal/records/cached"
	"github.com/lavamax/console/internal/usecase/refdata"
	"github.com/lavamax/console/internal/usecase/submission"
	"github.com/lavamax/console/internal/usecase/wizard"
)

func main() {
	// =========================================================================
	// Configuration
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format)
	log.Info("Starting wash console API server", map[string]interface{}{
		"records_api": cfg.Records.BaseURL,
	})

	// =========================================================================
	// Records API client
	// =========================================================================

	ctx := context.Background()

	var client records.Client = records.NewHTTPClient(
		cfg.Records.BaseURL,
		cfg.Records.Timeout,
		cfg.Records.ListRetries,
	)

	if err := client.Health(ctx); err != nil {
		log.Warn("Records API is not available", map[string]interface{}{
			"error": err.Error(),
			"url":   cfg.Records.BaseURL,
		})
		log.Warn("Wizard sessions will start with empty reference data until it recovers")
	} else {
		log.Info("Records API is healthy", map[string]interface{}{
			"url": cfg.Records.BaseURL,
		})
	}

	// =========================================================================
	// Reference cache (optional)
	// =========================================================================

	if cfg.Redis.Enabled {
		cache, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, running without reference cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() { _ = cache.Close() }()
			client = cached.New(client, cache, cfg.Redis.CacheTTL, log)
			log.Info("Reference cache enabled", map[string]interface{}{
				"ttl": cfg.Redis.CacheTTL.String(),
			})
		}
	}

	// =========================================================================
	// Use cases
	// =========================================================================

	loader := refdata.NewLoader(client, log)
	orchestrator := submission.NewOrchestrator(client, log)

	sessionStore := wizard.NewStore(cfg.Wizard.SessionTTL)
	defer sessionStore.Close()

	log.Info("Use cases initialized")

	// =========================================================================
	// HTTP handlers and router
	// =========================================================================

	wizardHandler := deliveryHTTP.NewWizardHandler(loader, sessionStore, orchestrator, log)
	serviceHandler := deliveryHTTP.NewServiceHandler(client, log)

	router := deliveryHTTP.NewRouter(wizardHandler, serviceHandler, cfg, log)
	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// HTTP server
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
