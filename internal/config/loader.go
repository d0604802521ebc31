// Package config provides configuration management for the race-edge scanner.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables override file values (RACE_EDGE_SCAN_EXPRESSION
	// overrides scan.expression, and so on)
	v.SetEnvPrefix("RACE_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields, so a missing config file still yields a runnable scanner. It
// expands environment variable placeholders in the YAML file (${VAR_NAME})
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("RACE_EDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// A missing file is fine here; defaults and environment variables carry.
	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "race-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("market.api_url", "https://www.predictit.org/api/marketdata/all/")
	v.SetDefault("market.timeout_seconds", 30)
	v.SetDefault("market.requests_per_second", 2)
	v.SetDefault("market.burst_size", 1)
	v.SetDefault("market.max_retries", 3)

	v.SetDefault("forecast.base_url", "https://projects.fivethirtyeight.com/2022-general-election-forecast-data/")
	v.SetDefault("forecast.cycle", 2022)
	v.SetDefault("forecast.timeout_seconds", 30)
	v.SetDefault("forecast.requests_per_second", 2)
	v.SetDefault("forecast.burst_size", 1)
	v.SetDefault("forecast.max_retries", 3)
	v.SetDefault("forecast.cache_ttl_minutes", 60)

	v.SetDefault("scan.min_profit_per_share", 0.05)
	v.SetDefault("scan.expression", "_classic")
	v.SetDefault("scan.chambers", []string{"senate", "governor"})

	v.SetDefault("report.title", "Race Edge")
	v.SetDefault("report.output_dir", "output")
	v.SetDefault("report.html_file", "index.html")
	v.SetDefault("report.csv_file", "opportunities.csv")
	v.SetDefault("report.json_file", "opportunities.json")

	v.SetDefault("monitor.schedule", "*/15 * * * *")
	v.SetDefault("monitor.listen_address", ":8080")
	v.SetDefault("monitor.health_port", 8081)
	v.SetDefault("monitor.stale_after_minutes", 45)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("publish.enabled", false)
	v.SetDefault("publish.key", "index.html")

	v.SetDefault("notify.enabled", false)
	v.SetDefault("notify.top_n", 5)
}
