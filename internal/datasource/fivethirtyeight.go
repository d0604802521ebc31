package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/yourusername/race-edge/internal/models"
)

const fteSourceName = "fivethirtyeight"

// Toplines column names. The files carry dozens of columns; these four are
// the ones a scan consumes.
const (
	colDistrict   = "district"
	colExpression = "expression"
	colWinProbD   = "winner_Dparty"
	colWinProbR   = "winner_Rparty"
)

// FiveThirtyEightClient fetches forecast toplines CSVs from the public
// static-data site.
type FiveThirtyEightClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	logger     *log.Logger
}

// NewFiveThirtyEightClient creates a new toplines client
func NewFiveThirtyEightClient(httpClient *RateLimitedHTTPClient, baseURL string, logger *log.Logger) *FiveThirtyEightClient {
	if logger == nil {
		logger = log.Default()
	}
	return &FiveThirtyEightClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// Name returns the name of the data source
func (c *FiveThirtyEightClient) Name() string {
	return fteSourceName
}

// FetchToplines retrieves and parses one toplines CSV. Columns are located
// by header name, so upstream column reordering is harmless. Rows whose
// probability cells are empty are skipped; any other malformed cell fails
// the fetch.
func (c *FiveThirtyEightClient) FetchToplines(ctx context.Context, filename string) ([]models.ForecastRecord, error) {
	url := strings.TrimRight(c.baseURL, "/") + "/" + filename

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, NewSourceError(fteSourceName, ErrCodeNetworkError, "failed to fetch "+filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusToSourceError(fteSourceName, resp.StatusCode)
	}

	records, skipped, err := parseToplines(resp.Body)
	if err != nil {
		return nil, NewSourceError(fteSourceName, ErrCodeInvalidData, "failed to parse "+filename, err)
	}
	if skipped > 0 {
		c.logger.Printf("Skipped %d %s rows with empty probability cells", skipped, filename)
	}

	c.logger.Printf("Fetched %d toplines rows from %s", len(records), filename)
	return records, nil
}

// parseToplines reads toplines rows from CSV data. It returns the parsed
// records and how many rows were skipped for empty probabilities.
func parseToplines(r io.Reader) ([]models.ForecastRecord, int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, col := range []string{colDistrict, colExpression, colWinProbD, colWinProbR} {
		if _, ok := idx[col]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q", col)
		}
	}

	var records []models.ForecastRecord
	skipped := 0
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}

		probD := row[idx[colWinProbD]]
		probR := row[idx[colWinProbR]]
		if probD == "" || probR == "" {
			// Races without a two-party probability pair cannot be
			// reconciled; the upstream leaves these cells empty.
			skipped++
			continue
		}

		winProbD, err := strconv.ParseFloat(probD, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: bad %s value %q", line, colWinProbD, probD)
		}
		winProbR, err := strconv.ParseFloat(probR, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: bad %s value %q", line, colWinProbR, probR)
		}

		records = append(records, models.ForecastRecord{
			District:   row[idx[colDistrict]],
			Expression: row[idx[colExpression]],
			WinProbD:   winProbD,
			WinProbR:   winProbR,
		})
	}

	return records, skipped, nil
}
