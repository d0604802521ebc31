package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/race-edge/internal/models"
)

var csvHeader = []string{
	"market_name", "market_url", "seat",
	"dem_buy_yes", "dem_buy_no", "dem_sell_yes", "dem_sell_no",
	"rep_buy_yes", "rep_buy_no", "rep_sell_yes", "rep_sell_no",
	"forecast_d", "forecast_r", "action", "side", "profit",
}

// csvPrice leaves missing quotes as empty cells rather than "-" so the
// export loads cleanly into numeric spreadsheet columns.
func csvPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *p)
}

// WriteCSV writes the opportunities table, a blank line, then the action
// summary table. The output carries no timestamps so identical scans export
// byte-identical files.
func WriteCSV(w io.Writer, data Data) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, opp := range data.Opportunities {
		record := []string{
			opp.MarketName, opp.MarketURL, opp.Seat,
			csvPrice(opp.Democratic.BuyYes), csvPrice(opp.Democratic.BuyNo),
			csvPrice(opp.Democratic.SellYes), csvPrice(opp.Democratic.SellNo),
			csvPrice(opp.Republican.BuyYes), csvPrice(opp.Republican.BuyNo),
			csvPrice(opp.Republican.SellYes), csvPrice(opp.Republican.SellNo),
			fmt.Sprintf("%.2f", opp.ForecastD), fmt.Sprintf("%.2f", opp.ForecastR),
			opp.ActionRec, string(opp.ActionSide), fmt.Sprintf("%.2f", opp.ActionProfit),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if len(data.Summaries) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return writeSummaryCSV(w, data.Summaries)
}

func writeSummaryCSV(w io.Writer, summaries []models.ActionSummary) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"action", "count", "seats"}); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, summary := range summaries {
		record := []string{
			summary.ActionRec,
			fmt.Sprintf("%d", summary.Count),
			strings.Join(summary.Seats, "; "),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write summary record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush summary CSV: %w", err)
	}
	return nil
}

// GenerateCSVExport writes the CSV export to a file
func GenerateCSVExport(data Data, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(outputPath, buf.Bytes(), 0o644)
}
