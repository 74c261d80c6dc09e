package server_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/config"
	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/server"
	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/testsupport"
)

func TestHealthOK(t *testing.T) {
	outDir := t.TempDir()
	cfg := &config.Config{AppName: "docmetrics", AppPort: "3000", OutputDirectory: outDir}
	srv := server.New(cfg, testsupport.Logger())

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)

	var health server.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.ReportStatus)
}

func TestHealthDegradedWithoutReport(t *testing.T) {
	cfg := &config.Config{
		AppName:         "docmetrics",
		AppPort:         "3000",
		OutputDirectory: filepath.Join(t.TempDir(), "missing"),
	}
	srv := server.New(cfg, testsupport.Logger())

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var health server.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "degraded", health.Status)
	assert.Equal(t, "missing", health.ReportStatus)
}

func TestServesBuiltReport(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "index.html"),
		[]byte("<html><body>report</body></html>"), 0o644))

	cfg := &config.Config{AppName: "docmetrics", AppPort: "3000", OutputDirectory: outDir}
	srv := server.New(cfg, testsupport.Logger())

	resp, err := srv.App().Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "report")
}
