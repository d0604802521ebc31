// Package helpers provides shared fixtures for end-to-end tests: mock
// upstream servers and a config pointed at them.
package helpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/race-edge/internal/config"
)

// SamplePredictItPayload is a trimmed marketdata document: two covered races,
// one market the patterns do not cover, and one null quote.
const SamplePredictItPayload = `{
  "markets": [
    {
      "shortName": "Which party will win the OH Senate race?",
      "url": "https://www.predictit.org/markets/detail/7054",
      "contracts": [
        {
          "name": "Democratic",
          "bestBuyYesCost": 0.40,
          "bestBuyNoCost": 0.62,
          "bestSellYesCost": 0.38,
          "bestSellNoCost": null
        },
        {
          "name": "Republican",
          "bestBuyYesCost": 0.62,
          "bestBuyNoCost": 0.40,
          "bestSellYesCost": 0.60,
          "bestSellNoCost": 0.38
        }
      ]
    },
    {
      "shortName": "Which party will win TX governor's race?",
      "url": "https://www.predictit.org/markets/detail/7053",
      "contracts": [
        {
          "name": "Democratic",
          "bestBuyYesCost": 0.30,
          "bestBuyNoCost": 0.72,
          "bestSellYesCost": 0.28,
          "bestSellNoCost": 0.70
        },
        {
          "name": "Republican",
          "bestBuyYesCost": 0.55,
          "bestBuyNoCost": 0.47,
          "bestSellYesCost": 0.53,
          "bestSellNoCost": 0.45
        }
      ]
    },
    {
      "shortName": "Which party will control the Senate after 2022?",
      "url": "https://www.predictit.org/markets/detail/7001",
      "contracts": [
        {
          "name": "Democratic",
          "bestBuyYesCost": 0.50,
          "bestBuyNoCost": 0.52,
          "bestSellYesCost": 0.48,
          "bestSellNoCost": 0.50
        }
      ]
    }
  ]
}`

// SampleSenateToplines carries extra columns, a non-classic variant row, a
// duplicate district row, and a district with no matching market.
const SampleSenateToplines = `cycle,branch,district,expression,forecastdate,winner_Dparty,winner_Rparty,mean_netpartymargin
2022,Senate,OH-S3,_classic,2022-10-28,0.6057,0.3943,2.1
2022,Senate,OH-S3,_deluxe,2022-10-28,0.5800,0.4200,1.8
2022,Senate,OH-S3,_classic,2022-10-28,0.9999,0.0001,9.9
2022,Senate,PA-S3,_classic,2022-10-28,0.5580,0.4420,1.2
`

// SampleGovernorToplines covers the TX race plus a row with empty
// probability cells, which the parser skips.
const SampleGovernorToplines = `cycle,branch,district,expression,forecastdate,winner_Dparty,winner_Rparty,mean_netpartymargin
2022,Governor,TX-G1,_classic,2022-10-28,0.3506,0.6494,-4.3
2022,Governor,UT-G1,_classic,2022-10-28,,,
`

// MockMarketServer serves a marketdata document at every path.
func MockMarketServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// MockForecastServer serves toplines CSVs by filename, 404 for the rest.
func MockForecastServer(t *testing.T, files map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// SampleToplinesFiles returns the 2022 fixture CSVs keyed by filename.
func SampleToplinesFiles() map[string]string {
	return map[string]string{
		"senate_state_toplines_2022.csv":   SampleSenateToplines,
		"governor_state_toplines_2022.csv": SampleGovernorToplines,
	}
}

// TestConfig builds a full config pointed at the given mock servers.
func TestConfig(marketURL, forecastBaseURL string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "race-edge",
			Environment: "development",
			LogLevel:    "error",
		},
		Market: config.MarketConfig{
			APIURL:            marketURL,
			TimeoutSeconds:    5,
			RequestsPerSecond: 100,
			BurstSize:         10,
			MaxRetries:        0,
		},
		Forecast: config.ForecastConfig{
			BaseURL:           forecastBaseURL,
			Cycle:             2022,
			TimeoutSeconds:    5,
			RequestsPerSecond: 100,
			BurstSize:         10,
			MaxRetries:        0,
			CacheTTLMinutes:   1,
		},
		Scan: config.ScanConfig{
			MinProfitPerShare: 0.05,
			Expression:        "_classic",
			Chambers:          []string{"senate", "governor"},
		},
		Report: config.ReportConfig{
			Title:     "PredictIt vs FiveThirtyEight",
			OutputDir: "reports",
			HTMLFile:  "index.html",
			CSVFile:   "opportunities.csv",
			JSONFile:  "opportunities.json",
		},
		Monitor: config.MonitorConfig{
			Schedule:          "@every 15m",
			ListenAddress:     "127.0.0.1:0",
			HealthPort:        18090,
			StaleAfterMinutes: 60,
		},
		Metrics: config.MetricsConfig{
			Enabled: false,
			Port:    19090,
			Path:    "/metrics",
		},
	}
}

// CreateTestContext creates a context with a timeout for testing.
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}

// GetEnvOrDefault returns environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
