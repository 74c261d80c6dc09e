package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/metrics"
)

const (
	chartWidth  = "900px"
	chartHeight = "650px"
)

// popularityChart renders ranked (label, count) pairs as a horizontal bar
// chart, largest bar on top.
func popularityChart(title, seriesName string, ranked []metrics.DimensionCount) *charts.Bar {
	// Category axes render bottom-up, so reverse for a descending chart.
	labels := make([]string, len(ranked))
	values := make([]opts.BarData, len(ranked))
	for i, item := range ranked {
		labels[len(ranked)-1-i] = item.Name
		values[len(ranked)-1-i] = opts.BarData{Value: item.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithGridOpts(opts.Grid{Left: "25%", Right: "5%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: seriesName}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels}),
	)

	bar.AddSeries(seriesName, values,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
	)
	return bar
}

// writeChart renders a chart as a standalone HTML file.
func writeChart(path string, bar *charts.Bar) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("report: rendering chart %s: %w", path, err)
	}
	return nil
}
