package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-edge/internal/config"
	"github.com/yourusername/race-edge/internal/models"
)

// Config holds the reconciliation parameters.
type Config struct {
	// MinProfitPerShare is the inclusive threshold an action's rounded
	// profit must meet to be reported.
	MinProfitPerShare float64
	// Expression selects the forecast model variant, e.g. "_classic".
	Expression string
	// Chambers are the race types to scan, in output order.
	Chambers []Chamber
}

// DefaultConfig returns the standard scan parameters.
func DefaultConfig() Config {
	return Config{
		MinProfitPerShare: 0.05,
		Expression:        "_classic",
		Chambers:          AllChambers(),
	}
}

// FromConfig converts app config to engine config.
func FromConfig(cfg *config.ScanConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("scan config is required")
	}

	chambers := make([]Chamber, 0, len(cfg.Chambers))
	for _, name := range cfg.Chambers {
		c, ok := ChamberByName(name)
		if !ok {
			return Config{}, fmt.Errorf("unknown chamber %q", name)
		}
		chambers = append(chambers, c)
	}

	ec := Config{
		MinProfitPerShare: cfg.MinProfitPerShare,
		Expression:        cfg.Expression,
		Chambers:          chambers,
	}
	return ec, ec.Validate()
}

// Validate checks engine config parameters.
func (c Config) Validate() error {
	if c.MinProfitPerShare < 0 {
		return fmt.Errorf("min profit per share must not be negative")
	}
	if c.Expression == "" {
		return fmt.Errorf("forecast expression is required")
	}
	if len(c.Chambers) == 0 {
		return fmt.Errorf("at least one chamber is required")
	}
	return nil
}

// Diagnostics counts rows excluded at each reconciliation step. It is purely
// informational and never changes scan output.
type Diagnostics struct {
	ContractsSeen          int `json:"contracts_seen"`
	ContractsKeyed         int `json:"contracts_keyed"`
	PartiesUnpaired        int `json:"parties_unpaired"`
	ForecastRows           int `json:"forecast_rows"`
	ForecastVariantDropped int `json:"forecast_variant_dropped"`
	ForecastDuplicates     int `json:"forecast_duplicates"`
	RacesWithoutForecast   int `json:"races_without_forecast"`
	RacesJoined            int `json:"races_joined"`
}

// Result is one complete reconciliation: the ranked opportunities, their
// per-action rollup, and the drop counters.
type Result struct {
	Opportunities []models.Opportunity
	Summaries     []models.ActionSummary
	Diagnostics   Diagnostics
}

// Engine reconciles market contracts with forecast probabilities and reports
// profitable actions. The computation is pure and single-threaded; identical
// inputs always produce identical results.
type Engine struct {
	cfg    Config
	logger *logrus.Logger
}

// New creates a reconciliation engine.
func New(cfg Config, logger *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Run reconciles one batch: market contracts fetched once, toplines rows
// keyed by chamber name. A chamber with no toplines entry is an error;
// everything else that fails to line up is dropped silently and counted.
func (e *Engine) Run(contracts []models.MarketContract, toplines map[string][]models.ForecastRecord) (*Result, error) {
	var diag Diagnostics
	diag.ContractsSeen = len(contracts)

	var joined []models.JoinedRace
	for _, chamber := range e.cfg.Chambers {
		rows, ok := toplines[chamber.Name]
		if !ok {
			return nil, fmt.Errorf("no toplines rows for chamber %q", chamber.Name)
		}
		forecasts := e.prepareForecasts(chamber, rows, &diag)
		joined = append(joined, e.joinChamber(chamber, contracts, forecasts, &diag)...)
	}

	var opps []models.Opportunity
	for _, dir := range []models.Direction{models.DirectionBuy, models.DirectionSell} {
		for _, race := range joined {
			if opp, ok := SelectAction(race, dir); ok {
				opps = append(opps, opp)
			}
		}
	}

	kept := FilterOpportunities(opps, e.cfg.MinProfitPerShare)
	RankOpportunities(kept)

	e.logger.WithFields(logrus.Fields{
		"contracts":     diag.ContractsSeen,
		"races_joined":  diag.RacesJoined,
		"opportunities": len(kept),
	}).Debug("Reconciliation complete")

	return &Result{
		Opportunities: kept,
		Summaries:     SummarizeActions(kept),
		Diagnostics:   diag,
	}, nil
}
