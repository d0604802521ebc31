// Package health serves the container health endpoints: /health, /live, and a
// /ready probe tied to scan freshness.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ScanStatusProvider reports the freshness of scan results.
type ScanStatusProvider interface {
	// LastScan returns when the most recent scan completed, and false if no
	// scan has completed yet.
	LastScan() (time.Time, bool)
}

// HealthResponse is the body served by /health and /live.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse is the body served by /ready, one entry per check.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	Port        string
	Logger      *logrus.Logger
	Scans       ScanStatusProvider
	// StaleAfter marks the service not ready when the last scan is older
	// than this. Zero disables the freshness check.
	StaleAfter time.Duration
}

// Server answers orchestrator probes on its own port so the main listener
// never gates deployment health.
type Server struct {
	serviceName string
	version     string
	commit      string
	port        string
	server      *http.Server
	logger      *logrus.Logger
	scans       ScanStatusProvider
	staleAfter  time.Duration
	mu          sync.RWMutex
	ready       bool
}

// NewServer creates a health server. The port falls back to HEALTH_PORT and
// then to 8080.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("HEALTH_PORT")
	}
	if port == "" {
		port = "8080"
	}

	return &Server{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		port:        port,
		logger:      cfg.Logger,
		scans:       cfg.Scans,
		staleAfter:  cfg.StaleAfter,
	}
}

// Start begins serving in the background and shuts down when ctx is done.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
			}).Info("Health endpoints listening")
		}
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health server failed")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown stops the server, allowing in-flight probes five seconds to finish.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	if s.logger != nil {
		s.logger.Info("Health endpoints shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// SetReady marks the service ready or not ready by hand. The orchestrator
// flips this after the first successful scan.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	s.ready = ready
	s.mu.Unlock()
}

// IsReady returns the manual readiness flag.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
		Commit:    s.commit,
	})
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: s.serviceName,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks, ok := s.runChecks()

	resp := ReadyResponse{
		Service:  s.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	status := http.StatusOK
	resp.Status = "ok"
	if !ok {
		status = http.StatusServiceUnavailable
		resp.Status = "not_ready"
	}
	s.writeJSON(w, status, resp)
}

// runChecks evaluates every readiness condition and reports each one by name.
func (s *Server) runChecks() (map[string]string, bool) {
	checks := make(map[string]string)
	ok := true

	if s.IsReady() {
		checks["service"] = "ok"
	} else {
		checks["service"] = "not_ready"
		ok = false
	}

	if s.scans != nil {
		last, done := s.scans.LastScan()
		switch {
		case !done:
			checks["scan"] = "no completed scan yet"
			ok = false
		case s.staleAfter > 0 && time.Since(last) > s.staleAfter:
			checks["scan"] = fmt.Sprintf("stale: last scan %s", last.UTC().Format(time.RFC3339))
			ok = false
		default:
			checks["scan"] = "ok"
		}
	}

	return checks, ok
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("Failed to encode health response")
	}
}
