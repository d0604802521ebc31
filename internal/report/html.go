package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: right; }
th { background: #f0f0f0; }
td.name, td.action { text-align: left; }
footer { color: #666; font-size: 0.8em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{len .Opportunities}} opportunities at or above {{printf "%.2f" .MinProfit}} profit per share.</p>
{{if .Opportunities}}
<table>
<tr>
<th>Market</th><th>Seat</th>
<th>D BuyYes</th><th>D BuyNo</th><th>D SellYes</th><th>D SellNo</th>
<th>R BuyYes</th><th>R BuyNo</th><th>R SellYes</th><th>R SellNo</th>
<th>FTE D</th><th>FTE R</th>
<th>Action</th><th>Profit</th>
</tr>
{{range .Opportunities}}
<tr>
<td class="name"><a href="{{.MarketURL}}">{{.MarketName}}</a></td>
<td>{{.Seat}}</td>
<td>{{price .Democratic.BuyYes}}</td><td>{{price .Democratic.BuyNo}}</td>
<td>{{price .Democratic.SellYes}}</td><td>{{price .Democratic.SellNo}}</td>
<td>{{price .Republican.BuyYes}}</td><td>{{price .Republican.BuyNo}}</td>
<td>{{price .Republican.SellYes}}</td><td>{{price .Republican.SellNo}}</td>
<td>{{printf "%.2f" .ForecastD}}</td><td>{{printf "%.2f" .ForecastR}}</td>
<td class="action">{{.ActionRec}}</td><td>{{printf "%.2f" .ActionProfit}}</td>
</tr>
{{end}}
</table>
{{else}}
<p>No opportunities at or above the profit threshold.</p>
{{end}}
{{if .Summaries}}
<h2>Action Summary</h2>
<table>
<tr><th>Action</th><th>Count</th><th>Seats</th></tr>
{{range .Summaries}}
<tr><td class="action">{{.ActionRec}}</td><td>{{.Count}}</td><td class="name">{{join .Seats}}</td></tr>
{{end}}
</table>
{{end}}
<footer>Generated {{timestamp .GeneratedAt}} (run {{.RunID}})</footer>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"price": formatPrice,
	"join": func(seats []string) string {
		return strings.Join(seats, ", ")
	},
	"timestamp": func(t time.Time) string {
		return t.UTC().Format(time.RFC3339)
	},
}).Parse(htmlTemplate))

// RenderHTML writes the HTML report to w
func RenderHTML(w io.Writer, data Data) error {
	if err := reportTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// GenerateHTMLReport renders the HTML report to a file
func GenerateHTMLReport(data Data, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	var buf bytes.Buffer
	if err := RenderHTML(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(outputPath, buf.Bytes(), 0o644)
}
