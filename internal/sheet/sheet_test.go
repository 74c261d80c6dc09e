package sheet_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/sheet"
)

const trafficCSV = "Date,Version,Path,Views\n" +
	"2024-01-01,stable,/guide,10\n" +
	"2024-01-02,stable,/guide,5\n" +
	"2024-01-02,latest,/api,3\n"

func TestParseString(t *testing.T) {
	s, err := sheet.ParseString(trafficCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Version", "Path", "Views"}, s.Headers())
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.IsEmpty())
	assert.Equal(t, []string{"2024-01-01", "stable", "/guide", "10"}, s.Row(0))
}

func TestParseSkipsBlankLinesAndCRLF(t *testing.T) {
	s, err := sheet.ParseString("Date,Views\r\n\r\n2024-01-01,10\r\n\n2024-01-02,5\r\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Views"}, s.Headers())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"2024-01-02", "5"}, s.Row(1))
}

func TestParseHeaderOnly(t *testing.T) {
	s, err := sheet.ParseString("Date,Views\n")
	require.NoError(t, err)

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Len())
}

func TestParseEmptySource(t *testing.T) {
	_, err := sheet.ParseString("")
	assert.ErrorIs(t, err, sheet.ErrEmptySource)

	_, err = sheet.ParseString("\n\n")
	assert.ErrorIs(t, err, sheet.ErrEmptySource)
}

func TestParseMalformedRow(t *testing.T) {
	_, err := sheet.ParseString("Date,Version,Path,Views\n2024-01-01,stable,/guide\n")
	require.Error(t, err)

	var malformed *sheet.MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, 4, malformed.Expected)
	assert.Equal(t, 3, malformed.Actual)
}

func TestParseMalformedRowLineNumberSkipsBlanks(t *testing.T) {
	_, err := sheet.ParseString("Date,Views\n2024-01-01,10\n\n2024-01-02,5,extra\n")

	var malformed *sheet.MalformedRowError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 4, malformed.Line)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "traffic.csv")
	require.NoError(t, os.WriteFile(path, []byte(trafficCSV), 0o644))

	s, err := sheet.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestParseFileNotFound(t *testing.T) {
	_, err := sheet.ParseFile(filepath.Join(t.TempDir(), "missing.csv"))

	var notFound *sheet.SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Path, "missing.csv")
}

func TestColumnAccess(t *testing.T) {
	s, err := sheet.ParseString(trafficCSV)
	require.NoError(t, err)

	views, err := s.Column("Views")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "5", "3"}, views)

	idx, err := s.ColumnIndex("Path")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	assert.True(t, s.HasColumn("Date"))
	assert.False(t, s.HasColumn("Nope"))
}

func TestUnknownColumn(t *testing.T) {
	s, err := sheet.ParseString(trafficCSV)
	require.NoError(t, err)

	_, err = s.Column("Nope")
	var unknown *sheet.UnknownColumnError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Nope", unknown.Column)

	_, err = s.ColumnIndex("Nope")
	assert.ErrorAs(t, err, &unknown)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s, err := sheet.ParseString(trafficCSV)
	require.NoError(t, err)

	row := s.Row(0)
	row[0] = "mutated"
	assert.Equal(t, "2024-01-01", s.Row(0)[0])

	headers := s.Headers()
	headers[0] = "mutated"
	assert.Equal(t, "Date", s.Headers()[0])

	rows := s.Rows()
	rows[1][3] = "mutated"
	assert.Equal(t, "5", s.Row(1)[3])
}

func TestNewValidatesRowWidth(t *testing.T) {
	_, err := sheet.New([]string{"Date", "Views"}, [][]string{{"2024-01-01"}})

	var malformed *sheet.MalformedRowError
	assert.ErrorAs(t, err, &malformed)

	_, err = sheet.New(nil, nil)
	assert.ErrorIs(t, err, sheet.ErrEmptySource)
}
