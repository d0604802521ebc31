// Package service orchestrates the scan workflow: fetch both feeds, run the
// reconciliation engine, and hand the result to renderers and delivery.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/race-edge/internal/datasource"
	"github.com/yourusername/race-edge/internal/engine"
	"github.com/yourusername/race-edge/internal/logger"
	"github.com/yourusername/race-edge/internal/metrics"
	"github.com/yourusername/race-edge/internal/models"
	"github.com/yourusername/race-edge/internal/report"
)

// ScanResult is one completed scan run.
type ScanResult struct {
	RunID         string                 `json:"run_id"`
	FetchedAt     time.Time              `json:"fetched_at"`
	MinProfit     float64                `json:"min_profit_per_share"`
	Opportunities []models.Opportunity   `json:"opportunities"`
	Summaries     []models.ActionSummary `json:"summaries"`
	Diagnostics   engine.Diagnostics     `json:"diagnostics"`
}

// ReportData assembles the renderer input for this result.
func (r *ScanResult) ReportData(title string) report.Data {
	return report.Data{
		Title:         title,
		RunID:         r.RunID,
		GeneratedAt:   r.FetchedAt,
		MinProfit:     r.MinProfit,
		Opportunities: r.Opportunities,
		Summaries:     r.Summaries,
		Diagnostics:   r.Diagnostics,
	}
}

// ScanService runs the full market-versus-forecast scan workflow
type ScanService struct {
	market   datasource.MarketSource
	forecast datasource.ForecastSource
	engine   *engine.Engine
	cycle    int
	metrics  *ScanMetrics
	logger   *logger.ScanLogger
}

// NewScanService creates a new scan service
func NewScanService(
	market datasource.MarketSource,
	forecast datasource.ForecastSource,
	eng *engine.Engine,
	cycle int,
	scanLogger *logger.ScanLogger,
) (*ScanService, error) {
	if market == nil {
		return nil, fmt.Errorf("market source is required")
	}
	if forecast == nil {
		return nil, fmt.Errorf("forecast source is required")
	}
	if eng == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if cycle <= 0 {
		return nil, fmt.Errorf("election cycle is required")
	}
	if scanLogger == nil {
		scanLogger = logger.NewScanLogger(logrus.New())
	}

	return &ScanService{
		market:   market,
		forecast: forecast,
		engine:   eng,
		cycle:    cycle,
		metrics:  NewScanMetrics(),
		logger:   scanLogger,
	}, nil
}

// Scan fetches contracts and toplines, runs the engine, and returns the
// ranked result. The market feed is fetched once and shared across chambers;
// chamber toplines are fetched concurrently.
func (s *ScanService) Scan(ctx context.Context) (*ScanResult, error) {
	runID := uuid.New().String()
	start := time.Now()

	chambers := s.engine.Config().Chambers
	chamberNames := make([]string, len(chambers))
	for i, chamber := range chambers {
		chamberNames[i] = chamber.Name
	}
	s.logger.LogScanStart(runID, chamberNames)

	var contracts []models.MarketContract
	toplines := make(map[string][]models.ForecastRecord, len(chambers))
	var toplinesMu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rows, err := s.fetchContracts(groupCtx, runID)
		if err != nil {
			return err
		}
		contracts = rows
		return nil
	})
	for _, chamber := range chambers {
		chamber := chamber
		group.Go(func() error {
			rows, err := s.fetchToplines(groupCtx, runID, chamber)
			if err != nil {
				return err
			}
			toplinesMu.Lock()
			toplines[chamber.Name] = rows
			toplinesMu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		s.recordFailure(runID, "fetch", err)
		return nil, err
	}

	result, err := s.engine.Run(contracts, toplines)
	if err != nil {
		s.recordFailure(runID, "engine", err)
		return nil, fmt.Errorf("engine run failed: %w", err)
	}

	duration := time.Since(start)
	s.recordSuccess(result, duration)
	s.logger.LogScanComplete(runID, result.Diagnostics.RacesJoined, len(result.Opportunities), duration)

	return &ScanResult{
		RunID:         runID,
		FetchedAt:     start.UTC(),
		MinProfit:     s.engine.Config().MinProfitPerShare,
		Opportunities: result.Opportunities,
		Summaries:     result.Summaries,
		Diagnostics:   result.Diagnostics,
	}, nil
}

func (s *ScanService) fetchContracts(ctx context.Context, runID string) ([]models.MarketContract, error) {
	fetchStart := time.Now()
	rows, err := s.market.FetchContracts(ctx)
	elapsed := time.Since(fetchStart)
	if err != nil {
		metrics.RecordSourceRequest(s.market.Name(), "error", elapsed.Seconds())
		return nil, fmt.Errorf("failed to fetch contracts: %w", err)
	}
	metrics.RecordSourceRequest(s.market.Name(), "success", elapsed.Seconds())
	s.logger.LogFetch(runID, s.market.Name(), len(rows), elapsed)
	return rows, nil
}

func (s *ScanService) fetchToplines(ctx context.Context, runID string, chamber engine.Chamber) ([]models.ForecastRecord, error) {
	filename := chamber.ToplinesFile(s.cycle)
	fetchStart := time.Now()
	rows, err := s.forecast.FetchToplines(ctx, filename)
	elapsed := time.Since(fetchStart)
	if err != nil {
		metrics.RecordSourceRequest(s.forecast.Name(), "error", elapsed.Seconds())
		return nil, fmt.Errorf("failed to fetch %s toplines: %w", chamber.Name, err)
	}
	metrics.RecordSourceRequest(s.forecast.Name(), "success", elapsed.Seconds())
	s.logger.LogFetch(runID, s.forecast.Name()+"/"+chamber.Name, len(rows), elapsed)
	return rows, nil
}

func (s *ScanService) recordSuccess(result *engine.Result, duration time.Duration) {
	diag := result.Diagnostics
	s.metrics.RecordRun(diag.ContractsSeen, diag.RacesJoined, len(result.Opportunities), duration)

	metrics.RecordScanCompleted(duration.Seconds())
	metrics.UpdateScanResults(diag.ContractsSeen, diag.RacesJoined, len(result.Opportunities))

	best := 0.0
	for _, opp := range result.Opportunities {
		if opp.ActionProfit > best {
			best = opp.ActionProfit
		}
	}
	metrics.UpdateBestProfit(best)

	counts := make(map[string]int, len(result.Summaries))
	for _, summary := range result.Summaries {
		counts[summary.ActionRec] = summary.Count
	}
	metrics.UpdateActionCounts(counts)
}

func (s *ScanService) recordFailure(runID, stage string, err error) {
	s.metrics.RecordError()
	metrics.RecordScanError()
	s.logger.LogScanError(runID, stage, err)
}

// Metrics returns the scan metrics tracker
func (s *ScanService) Metrics() *ScanMetrics {
	return s.metrics
}
