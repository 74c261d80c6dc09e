package report

import (
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/metrics"
)

// rankingTable formats ranked results for operator-facing console output.
func rankingTable(title string, ranked []metrics.DimensionCount) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)
	tbl.AppendHeader(table.Row{"#", "Name", "Count"})
	for i, item := range ranked {
		tbl.AppendRow(table.Row{i + 1, item.Name, item.Count})
	}
	return tbl.Render()
}
