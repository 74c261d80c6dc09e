// Package testsupport provides shared fixtures for tests: sample analytics
// exports and helpers for laying them out on disk.
package testsupport

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleTrafficCSV is a small page-traffic export in the provider's format.
const SampleTrafficCSV = "Date,Version,Path,Views\n" +
	"2024-01-01,stable,/guide,10\n" +
	"2024-01-02,stable,/guide,5\n" +
	"2024-01-02,latest,/api,3\n"

// SampleSearchCSV is a small search-query export in the provider's format.
const SampleSearchCSV = "Created Date,Query,Total Results\n" +
	"2024-01-01,install,12\n" +
	"2024-01-02,install,14\n" +
	"2024-01-02,kernel,7\n"

// WriteCSV writes contents under dir and returns the full path.
func WriteCSV(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// Logger returns a quiet structured logger for tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
