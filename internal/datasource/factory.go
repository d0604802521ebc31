package datasource

import (
	"log"
	"time"

	"github.com/yourusername/race-edge/internal/config"
)

// Sources bundles the two upstream clients a scan needs.
type Sources struct {
	Market   MarketSource
	Forecast ForecastSource

	marketHTTP   *RateLimitedHTTPClient
	forecastHTTP *RateLimitedHTTPClient
}

// NewSources builds the upstream clients from configuration. A positive
// forecast cache TTL wraps the forecast source in a read-through cache.
func NewSources(cfg *config.Config, logger *log.Logger) *Sources {
	marketHTTP := NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:           cfg.Market.Timeout(),
		MaxRetries:        cfg.Market.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.Market.RequestsPerSecond,
		Burst:             cfg.Market.BurstSize,
		CircuitBreakerMax: 5,
	}, logger)

	forecastHTTP := NewRateLimitedHTTPClient(HTTPClientConfig{
		Timeout:           cfg.Forecast.Timeout(),
		MaxRetries:        cfg.Forecast.MaxRetries,
		RetryWaitMin:      100 * time.Millisecond,
		RetryWaitMax:      10 * time.Second,
		RateLimit:         cfg.Forecast.RequestsPerSecond,
		Burst:             cfg.Forecast.BurstSize,
		CircuitBreakerMax: 5,
	}, logger)

	var forecast ForecastSource = NewFiveThirtyEightClient(forecastHTTP, cfg.Forecast.BaseURL, logger)
	if ttl := cfg.Forecast.CacheTTL(); ttl > 0 {
		forecast = NewCachedForecastSource(forecast, ttl)
	}

	return &Sources{
		Market:       NewPredictItClient(marketHTTP, cfg.Market.APIURL, logger),
		Forecast:     forecast,
		marketHTTP:   marketHTTP,
		forecastHTTP: forecastHTTP,
	}
}

// Close releases the underlying HTTP clients
func (s *Sources) Close() error {
	if s.marketHTTP != nil {
		_ = s.marketHTTP.Close()
	}
	if s.forecastHTTP != nil {
		_ = s.forecastHTTP.Close()
	}
	return nil
}
