// Package main provides the one-shot scanner CLI: fetch, reconcile, report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-edge/internal/config"
	"github.com/yourusername/race-edge/internal/datasource"
	"github.com/yourusername/race-edge/internal/engine"
	"github.com/yourusername/race-edge/internal/logger"
	"github.com/yourusername/race-edge/internal/report"
	"github.com/yourusername/race-edge/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		output     = flag.String("output", "", "Override the report output directory")
		minProfit  = flag.Float64("min-profit", -1, "Override the minimum profit per share")
		chambers   = flag.String("chambers", "", "Comma-separated chambers to scan (senate,governor)")
		writeCSV   = flag.Bool("csv", false, "Also write the CSV export")
		writeJSON  = flag.Bool("json", false, "Also write the JSON export")
		noHTML     = flag.Bool("no-html", false, "Skip the HTML report")
	)
	flag.Parse()

	// A .env file is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := loadConfig(*configPath)
	applyOverrides(cfg, *output, *minProfit, *chambers)

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	svc, sources := buildService(cfg, appLog)
	defer sources.Close()

	result, err := svc.Scan(context.Background())
	if err != nil {
		appLog.WithError(err).Fatal("Scan failed")
	}

	data := result.ReportData(cfg.Report.Title)
	fmt.Println(report.GenerateConsoleReport(data))

	writeExports(cfg, data, appLog, !*noHTML, *writeCSV, *writeJSON)
}

func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func applyOverrides(cfg *config.Config, output string, minProfit float64, chambers string) {
	if output != "" {
		cfg.Report.OutputDir = output
	}
	if minProfit >= 0 {
		cfg.Scan.MinProfitPerShare = minProfit
	}
	if chambers != "" {
		names := strings.Split(chambers, ",")
		cfg.Scan.Chambers = cfg.Scan.Chambers[:0]
		for _, name := range names {
			cfg.Scan.Chambers = append(cfg.Scan.Chambers, strings.TrimSpace(name))
		}
	}
}

func buildService(cfg *config.Config, appLog *logrus.Logger) (*service.ScanService, *datasource.Sources) {
	httpLog := log.New(os.Stdout, "datasource: ", log.LstdFlags)
	sources := datasource.NewSources(cfg, httpLog)

	engineConfig, err := engine.FromConfig(&cfg.Scan)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid scan parameters")
	}
	eng, err := engine.New(engineConfig, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create engine")
	}

	svc, err := service.NewScanService(sources.Market, sources.Forecast, eng, cfg.Forecast.Cycle, logger.NewScanLogger(appLog))
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create scan service")
	}
	return svc, sources
}

func writeExports(cfg *config.Config, data report.Data, appLog *logrus.Logger, html, csv, js bool) {
	if html {
		path := filepath.Join(cfg.Report.OutputDir, cfg.Report.HTMLFile)
		if err := report.GenerateHTMLReport(data, path); err != nil {
			appLog.WithError(err).Fatal("Failed to write HTML report")
		}
		appLog.WithField("path", path).Info("HTML report written")
	}

	if csv {
		path := filepath.Join(cfg.Report.OutputDir, exportName(cfg.Report.CSVFile, "opportunities.csv"))
		if err := report.GenerateCSVExport(data, path); err != nil {
			appLog.WithError(err).Fatal("Failed to write CSV export")
		}
		appLog.WithField("path", path).Info("CSV export written")
	}

	if js {
		path := filepath.Join(cfg.Report.OutputDir, exportName(cfg.Report.JSONFile, "opportunities.json"))
		if err := report.ExportToJSON(data, path); err != nil {
			appLog.WithError(err).Fatal("Failed to write JSON export")
		}
		appLog.WithField("path", path).Info("JSON export written")
	}
}

func exportName(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
