// Package metrics provides centralized Prometheus metrics registry for the scanner.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ScansCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_edge",
		Name:      "scans_completed_total",
		Help:      "Total number of completed scans",
	})
	ScanErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "race_edge",
		Name:      "scan_errors_total",
		Help:      "Total number of failed scans",
	})
)

// Gauge metrics
var (
	ContractsScanned = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_edge",
		Name:      "contracts_scanned",
		Help:      "Number of market contracts seen by the last scan",
	})
	RacesJoined = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_edge",
		Name:      "races_joined",
		Help:      "Number of races joined to a forecast in the last scan",
	})
	OpportunitiesFound = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_edge",
		Name:      "opportunities_found",
		Help:      "Number of opportunities above the profit threshold in the last scan",
	})
	BestProfitPerShare = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_edge",
		Name:      "best_profit_per_share",
		Help:      "Highest expected profit per share found in the last scan",
	})
	LastScanTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "race_edge",
		Name:      "last_scan_timestamp_seconds",
		Help:      "Unix timestamp of the last completed scan",
	})
)

// Histogram metrics
var (
	ScanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "race_edge",
		Name:      "scan_duration_seconds",
		Help:      "Duration of full scans in seconds",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(ScansCompletedTotal)
		registry.MustRegister(ScanErrorsTotal)

		// Register gauge metrics
		registry.MustRegister(ContractsScanned)
		registry.MustRegister(RacesJoined)
		registry.MustRegister(OpportunitiesFound)
		registry.MustRegister(BestProfitPerShare)
		registry.MustRegister(LastScanTimestamp)

		// Register histogram metrics
		registry.MustRegister(ScanDuration)

		// Register source metrics
		registry.MustRegister(SourceRequestsTotal)
		registry.MustRegister(SourceFetchDuration)
		registry.MustRegister(OpportunitiesByAction)
		registry.MustRegister(PublishesTotal)
		registry.MustRegister(NotificationsTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordScanCompleted records a successful scan and its duration.
func RecordScanCompleted(durationSeconds float64) {
	ScansCompletedTotal.Inc()
	ScanDuration.Observe(durationSeconds)
	LastScanTimestamp.SetToCurrentTime()
}

// RecordScanError records a failed scan.
func RecordScanError() {
	ScanErrorsTotal.Inc()
}

// UpdateScanResults updates the last-scan gauges.
func UpdateScanResults(contractsSeen, racesJoined, opportunities int) {
	ContractsScanned.Set(float64(contractsSeen))
	RacesJoined.Set(float64(racesJoined))
	OpportunitiesFound.Set(float64(opportunities))
}

// UpdateBestProfit updates the best profit per share gauge.
func UpdateBestProfit(profit float64) {
	BestProfitPerShare.Set(profit)
}
