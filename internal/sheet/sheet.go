// Package sheet parses raw CSV export text into an immutable tabular view
// addressable by row index and by column name. Cells stay raw strings; any
// type interpretation happens in the layers above.
package sheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrEmptySource reports CSV input without a header row.
var ErrEmptySource = errors.New("sheet: empty source, no header row")

// MalformedRowError reports a data row whose field count does not match the
// header's.
type MalformedRowError struct {
	Line     int // 1-based line number in the source
	Expected int
	Actual   int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("sheet: malformed row at line %d: expected %d fields, got %d",
		e.Line, e.Expected, e.Actual)
}

// UnknownColumnError reports a lookup against a column the header does not
// declare.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("sheet: unknown column %q", e.Column)
}

// SourceNotFoundError reports a source path that could not be opened.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("sheet: cannot read source %s: %v", e.Path, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// Sheet is a parsed CSV export: ordered column headers plus data rows of raw
// string cells. Every row holds exactly one cell per header. A Sheet is
// immutable once constructed; all accessors return copies.
type Sheet struct {
	headers []string
	rows    [][]string
}

// Parse reads comma-delimited UTF-8 text whose first non-blank line is the
// header. The analytics exports never quote fields, so each line is split
// naively on commas. Blank lines are skipped. A data line whose field count
// differs from the header's fails with a MalformedRowError carrying the
// source line number.
func Parse(r io.Reader) (*Sheet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		headers []string
		rows    [][]string
		line    int
	)
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if headers == nil {
			headers = fields
			continue
		}
		if len(fields) != len(headers) {
			return nil, &MalformedRowError{Line: line, Expected: len(headers), Actual: len(fields)}
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sheet: reading source: %w", err)
	}
	if headers == nil {
		return nil, ErrEmptySource
	}

	return &Sheet{headers: headers, rows: rows}, nil
}

// ParseString parses CSV text held in a string.
func ParseString(data string) (*Sheet, error) {
	return Parse(strings.NewReader(data))
}

// ParseFile parses the CSV file at path, assumed UTF-8 encoded.
func ParseFile(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("sheet: parsing %s: %w", path, err)
	}
	return s, nil
}

// New builds a Sheet from already-split rows, copying its inputs. Used when
// synthesizing merged views. Every row must match the header width.
func New(headers []string, rows [][]string) (*Sheet, error) {
	if len(headers) == 0 {
		return nil, ErrEmptySource
	}

	s := &Sheet{
		headers: append([]string(nil), headers...),
		rows:    make([][]string, 0, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return nil, &MalformedRowError{Line: i + 2, Expected: len(headers), Actual: len(row)}
		}
		s.rows = append(s.rows, append([]string(nil), row...))
	}
	return s, nil
}

// Headers returns the declared column names in source order.
func (s *Sheet) Headers() []string {
	return append([]string(nil), s.headers...)
}

// Len returns the number of data rows (the header is not counted).
func (s *Sheet) Len() int { return len(s.rows) }

// IsEmpty reports whether the sheet has a header but no data rows.
func (s *Sheet) IsEmpty() bool { return len(s.rows) == 0 }

// Row returns a copy of the data row at index i.
func (s *Sheet) Row(i int) []string {
	return append([]string(nil), s.rows[i]...)
}

// Rows returns a copy of every data row.
func (s *Sheet) Rows() [][]string {
	out := make([][]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// HasColumn reports whether name is a declared column.
func (s *Sheet) HasColumn(name string) bool {
	for _, h := range s.headers {
		if h == name {
			return true
		}
	}
	return false
}

// ColumnIndex returns the position of the named column within each row.
func (s *Sheet) ColumnIndex(name string) (int, error) {
	for i, h := range s.headers {
		if h == name {
			return i, nil
		}
	}
	return 0, &UnknownColumnError{Column: name}
}

// Column returns all cell values of the named column, in row order.
func (s *Sheet) Column(name string) ([]string, error) {
	idx, err := s.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(s.rows))
	for i, row := range s.rows {
		out[i] = row[idx]
	}
	return out, nil
}
