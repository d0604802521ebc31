package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"not-a-level", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := NewLogger(tt.level, "development")
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewLoggerFormatterByEnvironment(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok, "production logger should use JSON formatter")

	log = NewLogger("info", "development")
	_, ok = log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok, "development logger should use text formatter")
}

func TestScanLoggerComponentField(t *testing.T) {
	log, buf := setupTestLogger()
	sl := NewScanLogger(log)

	sl.LogScanStart("run-1", []string{"senate", "governor"})

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "scan", entry["component"])
	assert.Equal(t, "run-1", entry["run_id"])
	assert.Equal(t, "Scan started", entry["msg"])
}

func TestLogScanComplete(t *testing.T) {
	log, buf := setupTestLogger()
	sl := NewScanLogger(log)

	sl.LogScanComplete("run-2", 33, 7, 1500*time.Millisecond)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, float64(33), entry["races_joined"])
	assert.Equal(t, float64(7), entry["opportunities"])
	assert.Equal(t, float64(1500), entry["duration_ms"])
}

func TestLogFetch(t *testing.T) {
	log, buf := setupTestLogger()
	sl := NewScanLogger(log)

	sl.LogFetch("run-3", "market", 1200, 250*time.Millisecond)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "market", entry["source"])
	assert.Equal(t, float64(1200), entry["rows"])
}

func TestLogScanError(t *testing.T) {
	log, buf := setupTestLogger()
	sl := NewScanLogger(log)

	sl.LogScanError("run-4", "fetch", errors.New("connection refused"))

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "fetch", entry["stage"])
	assert.Equal(t, "connection refused", entry["error"])
	assert.Equal(t, "error", entry["level"])
}
