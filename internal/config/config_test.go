package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/config"
)

func TestDefaults(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	cfg := config.GetConfig()

	assert.Equal(t, "docmetrics", cfg.AppName)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "subproject_csvs", cfg.DataDirectory)
	assert.Equal(t, "metrics_output", cfg.OutputDirectory)
	assert.Equal(t, 25, cfg.RankingLimit)
}

func TestEnvironmentOverrides(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	t.Setenv("DOCMETRICS_ENV", "test")
	t.Setenv("DOCMETRICS_DATA_DIR", "/tmp/exports")
	t.Setenv("DOCMETRICS_RANKING_LIMIT", "5")
	t.Setenv("DOCMETRICS_LOG_LEVEL", "error")

	cfg := config.GetConfig()

	assert.True(t, cfg.IsTest())
	assert.Equal(t, "/tmp/exports", cfg.DataDirectory)
	assert.Equal(t, 5, cfg.RankingLimit)
	assert.Equal(t, config.LogLevelError, cfg.LogLevel)
}

func TestGetConfigIsCached(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	first := config.GetConfig()
	second := config.GetConfig()
	assert.Same(t, first, second)
}
