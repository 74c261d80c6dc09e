package metrics

import (
	"fmt"
	"strings"
)

// Column names as the documentation analytics provider exports them.
const (
	ColDate    = "Date"
	ColVersion = "Version"
	ColPath    = "Path"
	ColViews   = "Views"

	ColCreatedDate  = "Created Date"
	ColQuery        = "Query"
	ColTotalResults = "Total Results"
)

// Kind identifies which export shape a sheet carries.
type Kind string

const (
	KindTraffic Kind = "traffic"
	KindSearch  Kind = "search"
)

// Schema describes one recognized export shape: the canonical column order,
// the columns forming the per-row dedup key, and the column holding the
// count value. ViewsColumn is empty when every row counts once.
type Schema struct {
	Kind        Kind
	Columns     []string
	KeyColumns  []string
	ViewsColumn string
}

var (
	trafficSchema = Schema{
		Kind:        KindTraffic,
		Columns:     []string{ColDate, ColVersion, ColPath, ColViews},
		KeyColumns:  []string{ColDate, ColVersion, ColPath},
		ViewsColumn: ColViews,
	}

	// Search exports log one row per search; Total Results is the size of
	// the result set, not a usage count, so rows are tallied by occurrence.
	searchSchema = Schema{
		Kind:       KindSearch,
		Columns:    []string{ColCreatedDate, ColQuery, ColTotalResults},
		KeyColumns: []string{ColCreatedDate, ColQuery},
	}
)

// DetectSchema resolves the export shape from declared headers. A source
// qualifies when it carries at least the schema's columns; extra columns
// are tolerated and dropped during normalization.
func DetectSchema(headers []string) (Schema, error) {
	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}

	for _, schema := range []Schema{trafficSchema, searchSchema} {
		if hasAll(have, schema.Columns) {
			return schema, nil
		}
	}
	return Schema{}, &SchemaMismatchError{
		Reason: fmt.Sprintf("headers [%s] match neither traffic nor search exports",
			strings.Join(headers, ", ")),
	}
}

func hasAll(have map[string]bool, want []string) bool {
	for _, name := range want {
		if !have[name] {
			return false
		}
	}
	return true
}
