// Package metrics defines data source and delivery metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Source counter vectors
var (
	SourceRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_edge",
		Name:      "source_requests_total",
		Help:      "Total number of data source fetches by source and status",
	}, []string{"source", "status"})
)

// Source histogram vectors
var (
	SourceFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "race_edge",
		Name:      "source_fetch_duration_seconds",
		Help:      "Duration of data source fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
)

// Result gauge vectors
var (
	OpportunitiesByAction = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "race_edge",
		Name:      "opportunities_by_action",
		Help:      "Number of opportunities per recommended action in the last scan",
	}, []string{"action"})
)

// Delivery counter vectors
var (
	PublishesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_edge",
		Name:      "publishes_total",
		Help:      "Total number of report publishes by status",
	}, []string{"status"})
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "race_edge",
		Name:      "notifications_total",
		Help:      "Total number of notifications sent by status",
	}, []string{"status"})
)

// RecordSourceRequest records one data source fetch.
func RecordSourceRequest(source, status string, durationSeconds float64) {
	SourceRequestsTotal.WithLabelValues(source, status).Inc()
	SourceFetchDuration.WithLabelValues(source).Observe(durationSeconds)
}

// UpdateActionCounts replaces the per-action gauge values with the counts
// from the latest scan. Actions absent from counts are cleared.
func UpdateActionCounts(counts map[string]int) {
	OpportunitiesByAction.Reset()
	for action, count := range counts {
		OpportunitiesByAction.WithLabelValues(action).Set(float64(count))
	}
}

// RecordPublish records a report publish attempt.
func RecordPublish(status string) {
	PublishesTotal.WithLabelValues(status).Inc()
}

// RecordNotification records a notification attempt.
func RecordNotification(status string) {
	NotificationsTotal.WithLabelValues(status).Inc()
}
