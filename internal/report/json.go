package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yourusername/race-edge/internal/engine"
	"github.com/yourusername/race-edge/internal/models"
)

// jsonExport is the machine-readable shape of one scan. It carries no
// timestamps or run IDs so identical scans export byte-identical files.
type jsonExport struct {
	Title         string                 `json:"title"`
	MinProfit     float64                `json:"min_profit_per_share"`
	Opportunities []models.Opportunity   `json:"opportunities"`
	Summaries     []models.ActionSummary `json:"summaries"`
	Diagnostics   engine.Diagnostics     `json:"diagnostics"`
}

// WriteJSON writes the JSON export to w
func WriteJSON(w io.Writer, data Data) error {
	export := jsonExport{
		Title:         data.Title,
		MinProfit:     data.MinProfit,
		Opportunities: data.Opportunities,
		Summaries:     data.Summaries,
		Diagnostics:   data.Diagnostics,
	}
	// Empty scans still export arrays, not nulls.
	if export.Opportunities == nil {
		export.Opportunities = []models.Opportunity{}
	}
	if export.Summaries == nil {
		export.Summaries = []models.ActionSummary{}
	}

	encoded, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// ExportToJSON writes the JSON export to a file
func ExportToJSON(data Data, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()
	return WriteJSON(file, data)
}
