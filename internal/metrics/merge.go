package metrics

import (
	"strings"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/sheet"
)

// keySeparator joins key cells into a map key. Export cells never contain
// NUL, so the join cannot collide.
const keySeparator = "\x00"

// merge combines normalized same-schema views into one deduplicated view.
// Exports are daily snapshots of a rolling date window, so consecutive files
// restate most of each other's rows; rows are keyed on the schema's
// composite key and a key reappearing in a later view replaces the stored
// row (the later export is the more complete snapshot). Counts are never
// summed across views, which keeps the merge idempotent. Output rows keep
// the order their keys were first seen.
func merge(schema Schema, views []*sheet.Sheet) (*sheet.Sheet, error) {
	keyIndexes := make([]int, len(schema.KeyColumns))
	for i, name := range schema.KeyColumns {
		idx, err := views[0].ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		keyIndexes[i] = idx
	}

	var order []string
	chosen := make(map[string][]string)
	for _, view := range views {
		for i := 0; i < view.Len(); i++ {
			row := view.Row(i)

			parts := make([]string, len(keyIndexes))
			for k, idx := range keyIndexes {
				parts[k] = row[idx]
			}
			key := strings.Join(parts, keySeparator)

			if _, seen := chosen[key]; !seen {
				order = append(order, key)
			}
			chosen[key] = row
		}
	}

	rows := make([][]string, len(order))
	for i, key := range order {
		rows[i] = chosen[key]
	}
	return sheet.New(schema.Columns, rows)
}
