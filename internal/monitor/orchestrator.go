package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-edge/internal/config"
	"github.com/yourusername/race-edge/internal/health"
	"github.com/yourusername/race-edge/internal/metrics"
	"github.com/yourusername/race-edge/internal/notify"
	"github.com/yourusername/race-edge/internal/publish"
	"github.com/yourusername/race-edge/internal/report"
	"github.com/yourusername/race-edge/internal/scheduler"
	"github.com/yourusername/race-edge/internal/service"
)

// envelope is the websocket message frame pushed to dashboards.
type envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Components holds the orchestrator's collaborators. Publisher and Notifier
// may be nil when the corresponding feature is disabled.
type Components struct {
	Scanner   *service.ScanService
	Scheduler *scheduler.Scheduler
	Hub       *Hub
	Publisher publish.Publisher
	Notifier  notify.Notifier
}

// Orchestrator runs scans on a schedule and distributes each result to the
// dashboard, the publisher, and the notifier. It owns the dashboard and
// health servers, serving its own latest result to both.
type Orchestrator struct {
	cfg       *config.Config
	scanner   *service.ScanService
	scheduler *scheduler.Scheduler
	hub       *Hub
	server    *Server
	health    *health.Server
	publisher publish.Publisher
	notifier  notify.Notifier
	logger    *logrus.Logger

	mu       sync.RWMutex
	latest   *service.ScanResult
	lastScan time.Time
	running  bool
}

// NewOrchestrator creates the monitor orchestrator and its HTTP servers.
// Version and commit are surfaced on the health endpoints.
func NewOrchestrator(cfg *config.Config, components Components, version, commit string, logger *logrus.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if components.Scanner == nil {
		return nil, fmt.Errorf("scan service is required")
	}
	if components.Scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	if components.Hub == nil {
		return nil, fmt.Errorf("hub is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	o := &Orchestrator{
		cfg:       cfg,
		scanner:   components.Scanner,
		scheduler: components.Scheduler,
		hub:       components.Hub,
		publisher: components.Publisher,
		notifier:  components.Notifier,
		logger:    logger,
	}

	o.server = NewServer(cfg.Monitor.ListenAddress, o.hub, o, cfg.Report.Title, logger)
	o.health = health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     version,
		Commit:      commit,
		Port:        strconv.Itoa(cfg.Monitor.HealthPort),
		Logger:      logger,
		Scans:       o,
		StaleAfter:  cfg.Monitor.StaleAfter(),
	})

	logger.Info("Monitor orchestrator initialized")

	return o, nil
}

// Start brings up the hub and servers, runs one scan immediately, and
// schedules the rest.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.running {
		o.mu.Unlock()
		return fmt.Errorf("orchestrator is already running")
	}
	o.running = true
	o.mu.Unlock()

	o.logger.WithFields(logrus.Fields{
		"schedule": o.cfg.Monitor.Schedule,
		"listen":   o.cfg.Monitor.ListenAddress,
		"publish":  o.publisher != nil,
		"notify":   o.notifier != nil,
	}).Info("Starting monitor")

	go o.hub.Run(ctx)

	if err := o.server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start dashboard server: %w", err)
	}
	if err := o.health.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	// First scan right away so the dashboard has data before the first tick.
	if err := o.RunScan(ctx); err != nil {
		o.logger.WithError(err).Warn("Initial scan failed, will retry on schedule")
	}

	if err := o.scheduler.ScheduleJob("scan", o.cfg.Monitor.Schedule, o.RunScan); err != nil {
		return fmt.Errorf("failed to schedule scans: %w", err)
	}
	if err := o.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	o.logger.Info("Monitor started")

	return nil
}

// Stop gracefully stops the scheduler and servers.
func (o *Orchestrator) Stop() error {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return nil
	}
	o.running = false
	o.mu.Unlock()

	o.logger.Info("Stopping monitor")

	if err := o.scheduler.Stop(); err != nil {
		o.logger.WithError(err).Error("Failed to stop scheduler")
	}
	if err := o.server.Shutdown(); err != nil {
		o.logger.WithError(err).Error("Failed to stop dashboard server")
	}
	if err := o.health.Shutdown(); err != nil {
		o.logger.WithError(err).Error("Failed to stop health server")
	}

	o.logger.Info("Monitor stopped")

	return nil
}

// RunScan performs one scan and distributes the result. Distribution
// failures are logged and do not fail the scan.
func (o *Orchestrator) RunScan(ctx context.Context) error {
	result, err := o.scanner.Scan(ctx)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.latest = result
	o.lastScan = time.Now().UTC()
	o.mu.Unlock()

	o.health.SetReady(true)

	o.broadcastResult(result)
	o.publishResult(ctx, result)
	o.notifyResult(ctx, result)

	return nil
}

func (o *Orchestrator) broadcastResult(result *service.ScanResult) {
	data, err := json.Marshal(envelope{Type: "scan_result", Payload: result})
	if err != nil {
		o.logger.WithError(err).Error("Failed to encode scan envelope")
		return
	}
	o.hub.Broadcast(data)
}

func (o *Orchestrator) publishResult(ctx context.Context, result *service.ScanResult) {
	if o.publisher == nil {
		return
	}

	var buf bytes.Buffer
	if err := report.RenderHTML(&buf, result.ReportData(o.cfg.Report.Title)); err != nil {
		o.logger.WithError(err).Error("Failed to render report for publishing")
		metrics.RecordPublish("error")
		return
	}
	if err := o.publisher.PublishReport(ctx, buf.Bytes()); err != nil {
		o.logger.WithError(err).Warn("Failed to publish report")
		metrics.RecordPublish("error")
		return
	}
	metrics.RecordPublish("success")
}

func (o *Orchestrator) notifyResult(ctx context.Context, result *service.ScanResult) {
	if o.notifier == nil {
		return
	}

	if err := o.notifier.NotifyScan(ctx, result.Opportunities, result.FetchedAt); err != nil {
		o.logger.WithError(err).Warn("Failed to send notification")
		metrics.RecordNotification("error")
		return
	}
	metrics.RecordNotification("success")
}

// Latest implements ResultProvider for the dashboard server.
func (o *Orchestrator) Latest() (*service.ScanResult, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.latest, o.latest != nil
}

// LastScan implements health.ScanStatusProvider.
func (o *Orchestrator) LastScan() (time.Time, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastScan, !o.lastScan.IsZero()
}

// IsRunning reports whether Start has been called without a matching Stop.
func (o *Orchestrator) IsRunning() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.running
}
