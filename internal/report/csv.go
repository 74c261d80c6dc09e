package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/sheet"
)

// writeMergedCSV packages a merged view back out as a downloadable CSV
// artifact: same schema as the inputs, deduplicated rows.
func writeMergedCSV(path string, s *sheet.Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: creating merged CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.Headers()); err != nil {
		return fmt.Errorf("report: writing merged CSV header: %w", err)
	}
	for i := 0; i < s.Len(); i++ {
		if err := w.Write(s.Row(i)); err != nil {
			return fmt.Errorf("report: writing merged CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("report: flushing merged CSV %s: %w", path, err)
	}
	return nil
}
