// Package metrics aggregates documentation analytics exports. It wraps
// parsed CSV sheets, merges overlapping daily snapshots into a single
// deduplicated view, and answers total and top-N ranking queries over it.
package metrics

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/sheet"
)

// DimensionCount is one ranked (label, count) result, renderable directly
// into charts and tables.
type DimensionCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Metrics answers aggregate queries over one export or a merged set of
// exports. Instances are immutable; every query is re-derived from the
// underlying sheet.
type Metrics struct {
	sheet  *sheet.Sheet
	schema Schema
	cols   map[string]int
}

// New wraps a single parsed sheet. The export shape is detected from the
// headers and the sheet is normalized down to the canonical columns in
// canonical order; column positions are resolved once here and reused by
// every query.
func New(src *sheet.Sheet) (*Metrics, error) {
	schema, err := DetectSchema(src.Headers())
	if err != nil {
		return nil, err
	}

	normalized, err := normalize(src, schema)
	if err != nil {
		return nil, err
	}
	return &Metrics{sheet: normalized, schema: schema, cols: columnMap(schema)}, nil
}

// Build parses every path and merges the resulting views into one Metrics
// instance. Paths are expected in increasing export recency; on overlapping
// date windows the later export's row wins. The first unreadable path fails
// the whole build, and mixing traffic and search exports is rejected.
func Build(paths []string) (*Metrics, error) {
	if len(paths) == 0 {
		return nil, errors.New("metrics: no source paths given")
	}

	var (
		schema Schema
		views  []*sheet.Sheet
	)
	for i, path := range paths {
		src, err := sheet.ParseFile(path)
		if err != nil {
			return nil, err
		}

		m, err := New(src)
		if err != nil {
			return nil, fmt.Errorf("metrics: %s: %w", path, err)
		}
		if i == 0 {
			schema = m.schema
		} else if m.schema.Kind != schema.Kind {
			return nil, &SchemaMismatchError{
				Reason: fmt.Sprintf("cannot merge %s export %s into %s exports",
					m.schema.Kind, path, schema.Kind),
			}
		}
		views = append(views, m.sheet)
	}

	merged, err := merge(schema, views)
	if err != nil {
		return nil, err
	}
	return &Metrics{sheet: merged, schema: schema, cols: columnMap(schema)}, nil
}

func columnMap(schema Schema) map[string]int {
	cols := make(map[string]int, len(schema.Columns))
	for i, name := range schema.Columns {
		cols[name] = i
	}
	return cols
}

// normalize projects a source sheet onto the schema's canonical columns in
// canonical order, dropping any extra columns the provider tacked on.
func normalize(src *sheet.Sheet, schema Schema) (*sheet.Sheet, error) {
	indexes := make([]int, len(schema.Columns))
	for i, name := range schema.Columns {
		idx, err := src.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		indexes[i] = idx
	}

	rows := make([][]string, src.Len())
	for i := range rows {
		row := src.Row(i)
		out := make([]string, len(indexes))
		for k, idx := range indexes {
			out[k] = row[idx]
		}
		rows[i] = out
	}
	return sheet.New(schema.Columns, rows)
}

// Kind returns the detected export shape.
func (m *Metrics) Kind() Kind { return m.schema.Kind }

// IsTraffic reports whether this instance holds page-traffic data.
func (m *Metrics) IsTraffic() bool { return m.schema.Kind == KindTraffic }

// IsSearch reports whether this instance holds search-query data.
func (m *Metrics) IsSearch() bool { return m.schema.Kind == KindSearch }

// IsEmpty reports whether the underlying view has no data rows.
func (m *Metrics) IsEmpty() bool { return m.sheet.IsEmpty() }

// Len returns the number of data rows in the underlying view.
func (m *Metrics) Len() int { return m.sheet.Len() }

// Sheet exposes the (merged) view so callers can package it back out as a
// CSV artifact. The sheet is immutable.
func (m *Metrics) Sheet() *sheet.Sheet { return m.sheet }

// TotalViews sums the Views column across all rows of a traffic instance.
func (m *Metrics) TotalViews() (int, error) {
	if !m.IsTraffic() {
		return 0, &SchemaMismatchError{Reason: "total views requires a traffic export"}
	}

	viewsIdx := m.cols[ColViews]
	total := 0
	for i := 0; i < m.sheet.Len(); i++ {
		row := m.sheet.Row(i)
		n, err := parseCount(row[viewsIdx])
		if err != nil {
			return 0, fmt.Errorf("metrics: row %d: %w", i+1, err)
		}
		total += n
	}
	return total, nil
}

// MostPopularPages ranks page paths of a traffic instance by summed views.
func (m *Metrics) MostPopularPages(n int) ([]DimensionCount, error) {
	if !m.IsTraffic() {
		return nil, &SchemaMismatchError{Reason: "popular pages require a traffic export"}
	}
	return m.rankBy(ColPath, ColViews, n)
}

// MostPopularVersions ranks doc versions of a traffic instance by summed views.
func (m *Metrics) MostPopularVersions(n int) ([]DimensionCount, error) {
	if !m.IsTraffic() {
		return nil, &SchemaMismatchError{Reason: "popular versions require a traffic export"}
	}
	return m.rankBy(ColVersion, ColViews, n)
}

// MostPopularQueries ranks query strings of a search instance by how often
// they were searched. Each row is one search, so rows count once each.
func (m *Metrics) MostPopularQueries(n int) ([]DimensionCount, error) {
	if !m.IsSearch() {
		return nil, &SchemaMismatchError{Reason: "popular queries require a search export"}
	}
	return m.rankBy(ColQuery, "", n)
}

// rankBy is the shared grouping routine behind every top-N query: group by
// the dimension column, sum the value column (or count rows when valueCol is
// empty), then order descending by count with ties broken by ascending name.
func (m *Metrics) rankBy(dimensionCol, valueCol string, n int) ([]DimensionCount, error) {
	if n <= 0 {
		return nil, nil
	}

	dimIdx := m.cols[dimensionCol]
	valueIdx := -1
	if valueCol != "" {
		valueIdx = m.cols[valueCol]
	}

	counts := make(map[string]int)
	for i := 0; i < m.sheet.Len(); i++ {
		row := m.sheet.Row(i)
		weight := 1
		if valueIdx >= 0 {
			v, err := parseCount(row[valueIdx])
			if err != nil {
				return nil, fmt.Errorf("metrics: row %d: %w", i+1, err)
			}
			weight = v
		}
		counts[row[dimIdx]] += weight
	}

	ranked := make([]DimensionCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, DimensionCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked, nil
}

func parseCount(cell string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, fmt.Errorf("bad count value %q: %w", cell, err)
	}
	return n, nil
}
