package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-edge/internal/report"
	"github.com/yourusername/race-edge/internal/service"
)

// ResultProvider hands the dashboard endpoints the latest completed scan.
type ResultProvider interface {
	Latest() (*service.ScanResult, bool)
}

// Server is the dashboard HTTP server: HTML report at /, raw scan JSON at
// /api/scan, and live updates over /ws.
type Server struct {
	addr    string
	title   string
	hub     *Hub
	results ResultProvider
	server  *http.Server
	logger  *logrus.Logger
}

// NewServer creates the dashboard server. The hub must be running for /ws
// connections to progress.
func NewServer(addr string, hub *Hub, results ResultProvider, title string, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		addr:    addr,
		title:   title,
		hub:     hub,
		results: results,
		logger:  logger,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleReport)
	mux.HandleFunc("/api/scan", s.handleScan)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/ws", s.hub.HandleWS)
	return mux
}

// Start starts the dashboard server in the background.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		s.logger.WithField("addr", s.addr).Info("Dashboard server starting")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("Dashboard server error")
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the dashboard server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	s.logger.Info("Dashboard server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	result, ok := s.results.Latest()
	if !ok {
		http.Error(w, "no scan completed yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderHTML(w, result.ReportData(s.title)); err != nil {
		s.logger.WithError(err).Error("Failed to render report")
	}
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result, ok := s.results.Latest()
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "no scan completed yet"})
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.WithError(err).Error("Failed to encode scan result")
	}
}

type statusResponse struct {
	Service       string     `json:"service"`
	HasResult     bool       `json:"has_result"`
	FetchedAt     *time.Time `json:"fetched_at,omitempty"`
	Opportunities int        `json:"opportunities"`
	Clients       int        `json:"clients"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := statusResponse{
		Service: "race-edge",
		Clients: s.hub.ClientCount(),
	}
	if result, ok := s.results.Latest(); ok {
		status.HasResult = true
		status.FetchedAt = &result.FetchedAt
		status.Opportunities = len(result.Opportunities)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}
