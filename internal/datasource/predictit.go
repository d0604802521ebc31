package datasource

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/yourusername/race-edge/internal/models"
)

const predictItSourceName = "predictit"

// PredictItClient fetches the venue's public market data feed. The feed is
// one unauthenticated JSON document covering every open market.
type PredictItClient struct {
	httpClient *RateLimitedHTTPClient
	apiURL     string
	logger     *log.Logger
}

// NewPredictItClient creates a new market data client
func NewPredictItClient(httpClient *RateLimitedHTTPClient, apiURL string, logger *log.Logger) *PredictItClient {
	if logger == nil {
		logger = log.Default()
	}
	return &PredictItClient{
		httpClient: httpClient,
		apiURL:     apiURL,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *PredictItClient) Name() string {
	return predictItSourceName
}

// predictItResponse mirrors the venue's marketdata document
type predictItResponse struct {
	Markets []predictItMarket `json:"markets"`
}

type predictItMarket struct {
	ShortName string              `json:"shortName"`
	URL       string              `json:"url"`
	Contracts []predictItContract `json:"contracts"`
}

type predictItContract struct {
	Name            string   `json:"name"`
	BestBuyYesCost  *float64 `json:"bestBuyYesCost"`
	BestBuyNoCost   *float64 `json:"bestBuyNoCost"`
	BestSellYesCost *float64 `json:"bestSellYesCost"`
	BestSellNoCost  *float64 `json:"bestSellNoCost"`
}

// FetchContracts retrieves the full current contract list, flattened to one
// row per (market, contract) and exactly de-duplicated
func (c *PredictItClient) FetchContracts(ctx context.Context) ([]models.MarketContract, error) {
	resp, err := c.httpClient.Get(ctx, c.apiURL)
	if err != nil {
		return nil, NewSourceError(predictItSourceName, ErrCodeNetworkError, "failed to fetch market data", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusToSourceError(predictItSourceName, resp.StatusCode)
	}

	var payload predictItResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewSourceError(predictItSourceName, ErrCodeInvalidData, "failed to decode market data", err)
	}

	contracts := flattenMarkets(payload.Markets)
	c.logger.Printf("Fetched %d contracts across %d markets", len(contracts), len(payload.Markets))
	return contracts, nil
}

// flattenMarkets turns the nested market document into contract rows,
// collapsing exact duplicates in feed order
func flattenMarkets(markets []predictItMarket) []models.MarketContract {
	seen := make(map[string]bool)
	out := make([]models.MarketContract, 0, len(markets))

	for _, m := range markets {
		for _, ct := range m.Contracts {
			row := models.MarketContract{
				MarketName: m.ShortName,
				MarketURL:  m.URL,
				Party:      models.Party(ct.Name),
				BuyYes:     ct.BestBuyYesCost,
				BuyNo:      ct.BestBuyNoCost,
				SellYes:    ct.BestSellYesCost,
				SellNo:     ct.BestSellNoCost,
			}
			fp := row.Fingerprint()
			if seen[fp] {
				continue
			}
			seen[fp] = true
			out = append(out, row)
		}
	}
	return out
}

// statusToSourceError maps an HTTP status to a typed source error
func statusToSourceError(source string, status int) error {
	switch {
	case status == http.StatusNotFound:
		return NewSourceError(source, ErrCodeNotFound, "resource not found", ErrNotFound)
	case status == http.StatusTooManyRequests:
		return NewSourceError(source, ErrCodeRateLimitExceeded, "rate limited by upstream", ErrRateLimitExceeded)
	case status >= 500:
		return NewSourceError(source, ErrCodeServerError, http.StatusText(status), ErrServerError)
	default:
		return NewSourceError(source, ErrCodeUnknown, http.StatusText(status), nil)
	}
}
