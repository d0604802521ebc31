// Package logger provides scan-specific logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ScanLogger provides dedicated logging for scan runs.
type ScanLogger struct {
	*logrus.Entry
}

// NewScanLogger creates a new scan logger.
func NewScanLogger(baseLogger *logrus.Logger) *ScanLogger {
	return &ScanLogger{
		Entry: baseLogger.WithField("component", "scan"),
	}
}

// LogScanStart logs the beginning of a scan run.
func (sl *ScanLogger) LogScanStart(runID string, chambers []string) {
	sl.WithFields(logrus.Fields{
		"run_id":   runID,
		"chambers": chambers,
	}).Info("Scan started")
}

// LogFetch logs one upstream fetch.
func (sl *ScanLogger) LogFetch(runID, source string, rows int, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"run_id":      runID,
		"source":      source,
		"rows":        rows,
		"duration_ms": duration.Milliseconds(),
	}).Info("Fetch completed")
}

// LogScanComplete logs a finished scan run.
func (sl *ScanLogger) LogScanComplete(runID string, racesJoined, opportunities int, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"run_id":        runID,
		"races_joined":  racesJoined,
		"opportunities": opportunities,
		"duration_ms":   duration.Milliseconds(),
	}).Info("Scan completed")
}

// LogScanError logs a failed scan run.
func (sl *ScanLogger) LogScanError(runID, stage string, err error) {
	sl.WithFields(logrus.Fields{
		"run_id": runID,
		"stage":  stage,
	}).WithError(err).Error("Scan failed")
}
