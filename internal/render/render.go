// Package render turns the history log into a static dashboard page.
//
// The dashboard shows the latest total and name-filtered counts as headline
// numbers and the total series as a time-series line chart. Records are
// sorted by timestamp before rendering; the log's on-disk order is append
// order.
package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pfrederiksen/startlist-watch/internal/history"
)

const chartFile = "chart.html"

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 2rem; }
    .cards { display: flex; gap: 1rem; }
    .card { border: 1px solid #ddd; border-radius: 8px; padding: 1rem 2rem; }
    .card h1 { margin: 0.2rem 0 0; }
    iframe { border: 0; width: 100%; height: 480px; margin-top: 1.5rem; }
  </style>
</head>
<body>
  <section class="cards">
    <article class="card">
      <p>Total registered</p>
      <h1>{{.Total}}</h1>
    </article>
    <article class="card">
      <p>{{.NamedLabel}}</p>
      <h1>{{.Named}}</h1>
    </article>
  </section>
  <iframe src="{{.ChartFile}}"></iframe>
</body>
</html>
`))

type pageData struct {
	Title      string
	Total      int
	Named      int
	NamedLabel string
	ChartFile  string
}

// WriteDashboard renders the history as a dashboard at path, writing the
// chart to a sibling file the page embeds. The headline values are the most
// recent total and the most recent non-absent named count.
func WriteDashboard(path string, records []history.Record, watchName string) error {
	if len(records) == 0 {
		return fmt.Errorf("no history records to render")
	}

	sorted := history.Sorted(records)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := writeChart(filepath.Join(dir, chartFile), sorted); err != nil {
		return err
	}

	data := pageData{
		Title:      "Race registrations",
		Total:      sorted[len(sorted)-1].Total,
		Named:      latestNamed(sorted),
		NamedLabel: "Watched name",
		ChartFile:  chartFile,
	}
	if watchName != "" {
		data.NamedLabel = fmt.Sprintf("Matching %q", watchName)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dashboard: %w", err)
	}
	defer f.Close()

	if err := pageTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}
	return nil
}

// writeChart renders the total series as a line chart.
func writeChart(path string, sorted []history.Record) error {
	timestamps := make([]string, 0, len(sorted))
	points := make([]opts.LineData, 0, len(sorted))
	for _, rec := range sorted {
		timestamps = append(timestamps, rec.Timestamp)
		points = append(points, opts.LineData{Value: rec.Total})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Registrations over time",
			Width:     "1000px",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Registrations over time"}),
	)
	line.SetXAxis(timestamps).AddSeries("Total registrations", points)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

// latestNamed returns the most recent non-absent named count, or 0.
func latestNamed(sorted []history.Record) int {
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].Named != nil {
			return *sorted[i].Named
		}
	}
	return 0
}
