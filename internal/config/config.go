// Package config provides configuration management for the race-edge scanner.
package config

import "time"

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Market   MarketConfig   `mapstructure:"market" validate:"required"`
	Forecast ForecastConfig `mapstructure:"forecast" validate:"required"`
	Scan     ScanConfig     `mapstructure:"scan" validate:"required"`
	Report   ReportConfig   `mapstructure:"report" validate:"required"`
	Monitor  MonitorConfig  `mapstructure:"monitor" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Publish  PublishConfig  `mapstructure:"publish"`
	Notify   NotifyConfig   `mapstructure:"notify"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// MarketConfig represents the prediction-market data feed configuration
type MarketConfig struct {
	APIURL            string  `mapstructure:"api_url" validate:"required,url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	BurstSize         int     `mapstructure:"burst_size" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
}

// ForecastConfig represents the forecast toplines feed configuration
type ForecastConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	Cycle             int     `mapstructure:"cycle" validate:"required,electioncycle"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	BurstSize         int     `mapstructure:"burst_size" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	CacheTTLMinutes   int     `mapstructure:"cache_ttl_minutes" validate:"gte=0"`
}

// ScanConfig represents the reconciliation parameters
type ScanConfig struct {
	MinProfitPerShare float64  `mapstructure:"min_profit_per_share" validate:"gte=0"`
	Expression        string   `mapstructure:"expression" validate:"required"`
	Chambers          []string `mapstructure:"chambers" validate:"required,min=1,chambers"`
}

// ReportConfig represents report rendering configuration
type ReportConfig struct {
	Title     string `mapstructure:"title" validate:"required"`
	OutputDir string `mapstructure:"output_dir" validate:"required"`
	HTMLFile  string `mapstructure:"html_file" validate:"required"`
	CSVFile   string `mapstructure:"csv_file"`
	JSONFile  string `mapstructure:"json_file"`
}

// MonitorConfig represents the long-running monitor mode configuration
type MonitorConfig struct {
	Schedule          string `mapstructure:"schedule" validate:"required"`
	ListenAddress     string `mapstructure:"listen_address" validate:"required"`
	HealthPort        int    `mapstructure:"health_port" validate:"required,min=1,max=65535"`
	StaleAfterMinutes int    `mapstructure:"stale_after_minutes" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// PublishConfig represents optional S3 publishing of the rendered report
type PublishConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Bucket  string `mapstructure:"bucket"`
	Key     string `mapstructure:"key"`
	Region  string `mapstructure:"region"`
}

// NotifyConfig represents optional Telegram notification after scans
type NotifyConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
	TopN     int    `mapstructure:"top_n" validate:"gte=0"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Timeout returns the market feed request timeout
func (m MarketConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// Timeout returns the forecast feed request timeout
func (f ForecastConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long fetched toplines stay fresh. Zero disables
// caching.
func (f ForecastConfig) CacheTTL() time.Duration {
	return time.Duration(f.CacheTTLMinutes) * time.Minute
}

// StaleAfter returns how old the last successful scan may be before the
// monitor reports itself unready
func (m MonitorConfig) StaleAfter() time.Duration {
	return time.Duration(m.StaleAfterMinutes) * time.Minute
}
