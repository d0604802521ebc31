package report

import (
	"fmt"
	"strings"
)

// GenerateConsoleReport formats a scan result for terminal output
func GenerateConsoleReport(data Data) string {
	var builder strings.Builder
	builder.WriteString(data.Title + "\n")
	builder.WriteString(strings.Repeat("=", len(data.Title)) + "\n")
	builder.WriteString(fmt.Sprintf("Opportunities: %d (min profit %.2f/share)\n",
		len(data.Opportunities), data.MinProfit))
	builder.WriteString("\n")

	if len(data.Opportunities) == 0 {
		builder.WriteString("No opportunities at or above the profit threshold.\n")
	}
	for _, opp := range data.Opportunities {
		builder.WriteString(fmt.Sprintf("%-8s %s (%+.2f/share)\n",
			opp.Seat, opp.ActionRec, opp.ActionProfit))
		builder.WriteString(fmt.Sprintf("         %s\n", opp.MarketName))
		builder.WriteString(fmt.Sprintf("         forecast %.2f/%.2f  dem %s  rep %s\n",
			opp.ForecastD, opp.ForecastR,
			formatQuotes(opp.Democratic), formatQuotes(opp.Republican)))
	}

	if len(data.Summaries) > 0 {
		builder.WriteString("\nAction Summary\n")
		builder.WriteString("--------------\n")
		for _, summary := range data.Summaries {
			builder.WriteString(fmt.Sprintf("%dx %s (%s)\n",
				summary.Count, summary.ActionRec, strings.Join(summary.Seats, ", ")))
		}
	}

	diag := data.Diagnostics
	builder.WriteString(fmt.Sprintf("\nScanned %d contracts, joined %d races, %d markets without forecast\n",
		diag.ContractsSeen, diag.RacesJoined, diag.RacesWithoutForecast))
	return builder.String()
}
