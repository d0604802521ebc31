// Package logger builds the process-wide logrus instance and the scan-scoped
// field wrappers.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger at the given level, formatted for the given
// environment: JSON in production, colored text everywhere else. An
// unknown level falls back to info with a warning.
func NewLogger(logLevel, environment string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(formatterFor(environment))

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

func formatterFor(environment string) logrus.Formatter {
	if environment == "production" {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	}
}
