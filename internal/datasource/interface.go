package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/race-edge/internal/models"
)

// MarketSource defines the interface for fetching tradable contract rows
// from a prediction-market venue
type MarketSource interface {
	// FetchContracts retrieves the venue's full current contract list,
	// flattened to one row per contract and exactly de-duplicated
	FetchContracts(ctx context.Context) ([]models.MarketContract, error)

	// Name returns the name of the data source
	Name() string
}

// ForecastSource defines the interface for fetching forecast toplines rows
type ForecastSource interface {
	// FetchToplines retrieves and parses one toplines CSV by filename.
	// Rows are returned unfiltered; variant selection happens downstream
	FetchToplines(ctx context.Context, filename string) ([]models.ForecastRecord, error)

	// Name returns the name of the data source
	Name() string
}

// SourceError represents errors from data source operations
type SourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeUnknown           = "unknown"
)

// Sentinel errors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrNotFound          = errors.New("data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrNetworkError      = errors.New("network error")
	ErrServerError       = errors.New("server error")
)

// NewSourceError creates a new data source error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
