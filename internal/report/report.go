// Package report renders scan results for people and spreadsheets: a console
// summary, an HTML page, and CSV/JSON exports.
package report

import (
	"fmt"
	"time"

	"github.com/yourusername/race-edge/internal/engine"
	"github.com/yourusername/race-edge/internal/models"
)

// Data is everything the renderers consume from one completed scan.
type Data struct {
	Title         string
	RunID         string
	GeneratedAt   time.Time
	MinProfit     float64
	Opportunities []models.Opportunity
	Summaries     []models.ActionSummary
	Diagnostics   engine.Diagnostics
}

// formatPrice renders one quoted price, or "-" when the venue lists none.
func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}

func formatQuotes(q models.PartyQuotes) string {
	return fmt.Sprintf("buy %s/%s sell %s/%s",
		formatPrice(q.BuyYes), formatPrice(q.BuyNo),
		formatPrice(q.SellYes), formatPrice(q.SellNo))
}
