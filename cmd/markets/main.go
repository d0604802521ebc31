package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yourusername/race-edge/internal/config"
	"github.com/yourusername/race-edge/internal/datasource"
	"github.com/yourusername/race-edge/internal/engine"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile    string
	showUnmatched bool
	cfg           *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVar(&showUnmatched, "unmatched", false, "List market labels no chamber pattern matches")
}

var rootCmd = &cobra.Command{
	Use:   "markets",
	Short: "Show which market labels the race patterns catch",
	Long:  `Fetches the live market feed and reports, per chamber, which markets the race label patterns match and which are left out.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		loaded, err := config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		displayCoverage()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func displayCoverage() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	httpLog := log.New(io.Discard, "", 0)
	sources := datasource.NewSources(cfg, httpLog)
	defer sources.Close()

	fmt.Println("\n╔════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                   Market Pattern Coverage                      ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")

	fmt.Print("\nMarket Feed: ")
	contracts, err := sources.Market.FetchContracts(ctx)
	if err != nil {
		fmt.Println("❌ UNAVAILABLE")
		log.Fatalf("Fetch error: %v", err)
	}
	fmt.Printf("✓ %d contracts\n", len(contracts))

	labels := make(map[string]bool)
	for _, contract := range contracts {
		labels[contract.MarketName] = true
	}
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("Distinct markets: %d\n", len(names))

	matched := make(map[string]bool)
	for _, chamber := range engine.AllChambers() {
		seen := make(map[string]bool)
		var seats []string
		for _, name := range names {
			key, ok := chamber.ExtractRaceKey(name)
			if !ok {
				continue
			}
			matched[name] = true
			if !seen[key.String()] {
				seen[key.String()] = true
				seats = append(seats, key.String())
			}
		}
		sort.Strings(seats)

		fmt.Printf("\n%s pattern: %d markets\n", chamber.Name, len(seats))
		for _, seat := range seats {
			fmt.Printf("  %s\n", seat)
		}
	}

	var unmatched []string
	for _, name := range names {
		if !matched[name] {
			unmatched = append(unmatched, name)
		}
	}
	fmt.Printf("\nNot covered: %d markets\n", len(unmatched))
	if showUnmatched {
		for _, name := range unmatched {
			fmt.Printf("  %s\n", name)
		}
	}

	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Feed URL: %s\n", cfg.Market.APIURL)
	fmt.Printf("  Cycle: %d\n", cfg.Forecast.Cycle)
	fmt.Println()
}
