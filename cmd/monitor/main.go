// Package main provides the entry point for the long-running monitor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-edge/internal/config"
	"github.com/yourusername/race-edge/internal/datasource"
	"github.com/yourusername/race-edge/internal/engine"
	"github.com/yourusername/race-edge/internal/logger"
	"github.com/yourusername/race-edge/internal/metrics"
	"github.com/yourusername/race-edge/internal/monitor"
	"github.com/yourusername/race-edge/internal/notify"
	"github.com/yourusername/race-edge/internal/publish"
	"github.com/yourusername/race-edge/internal/scheduler"
	"github.com/yourusername/race-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Configuration not allowed in this environment: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"commit":      GitCommit,
	}).Info("Race edge monitor starting")

	// Initialize upstream sources
	httpLog := log.New(os.Stdout, "datasource: ", log.LstdFlags)
	sources := datasource.NewSources(cfg, httpLog)
	defer func() {
		if err := sources.Close(); err != nil {
			appLog.WithError(err).Error("Failed to close sources")
		}
	}()

	// Initialize the reconciliation engine and scan service
	engineConfig, err := engine.FromConfig(&cfg.Scan)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid scan parameters")
	}
	eng, err := engine.New(engineConfig, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create engine")
	}
	scanService, err := service.NewScanService(sources.Market, sources.Forecast, eng, cfg.Forecast.Cycle, logger.NewScanLogger(appLog))
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create scan service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional integrations
	var publisher publish.Publisher
	if cfg.Publish.Enabled {
		s3Publisher, err := publish.NewS3Publisher(ctx, &cfg.Publish, appLog)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to create S3 publisher")
		}
		publisher = s3Publisher
		appLog.WithFields(logrus.Fields{
			"bucket": cfg.Publish.Bucket,
			"key":    cfg.Publish.Key,
		}).Info("S3 publishing enabled")
	}

	var notifier notify.Notifier
	if cfg.Notify.Enabled {
		telegramNotifier, err := notify.NewTelegramNotifier(&cfg.Notify, appLog)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to create Telegram notifier")
		}
		notifier = telegramNotifier
		appLog.Info("Telegram notifications enabled")
	}

	// Metrics endpoint on its own port
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			appLog.WithFields(logrus.Fields{
				"port": cfg.Metrics.Port,
				"path": cfg.Metrics.Path,
			}).Info("Metrics server starting")
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.WithError(err).Error("Metrics server error")
			}
		}()
	}

	// Create the orchestrator
	orchestrator, err := monitor.NewOrchestrator(cfg, monitor.Components{
		Scanner:   scanService,
		Scheduler: scheduler.NewScheduler(log.New(os.Stdout, "scheduler: ", log.LstdFlags)),
		Hub:       monitor.NewHub(appLog),
		Publisher: publisher,
		Notifier:  notifier,
	}, Version, GitCommit, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create orchestrator")
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := orchestrator.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start monitor")
	}

	appLog.WithFields(logrus.Fields{
		"schedule":    cfg.Monitor.Schedule,
		"listen":      cfg.Monitor.ListenAddress,
		"health_port": cfg.Monitor.HealthPort,
	}).Info("Monitor is running")

	// Wait for shutdown signal
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()

	if err := orchestrator.Stop(); err != nil {
		appLog.WithError(err).Error("Error during monitor shutdown")
	}
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error during metrics server shutdown")
		}
		shutdownCancel()
	}

	// Give components time to cleanup
	time.Sleep(2 * time.Second)

	appLog.Info("Race edge monitor shut down")
}
