// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"log/slog"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// File paths
	DataDirectory   string `mapstructure:"datadir"`
	OutputDirectory string `mapstructure:"outputdir"`

	// Report settings
	RankingLimit int `mapstructure:"rankinglimit"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		// Set defaults
		v.SetDefault("appname", "docmetrics")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("datadir", "subproject_csvs")
		v.SetDefault("outputdir", "metrics_output")
		v.SetDefault("rankinglimit", 25)
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)

		// Bind environment variables
		v.BindEnv("appname", "DOCMETRICS_APP_NAME")
		v.BindEnv("appport", "DOCMETRICS_APP_PORT")
		v.BindEnv("environment", "DOCMETRICS_ENV")
		v.BindEnv("loglevel", "DOCMETRICS_LOG_LEVEL")
		v.BindEnv("datadir", "DOCMETRICS_DATA_DIR")
		v.BindEnv("outputdir", "DOCMETRICS_OUTPUT_DIR")
		v.BindEnv("rankinglimit", "DOCMETRICS_RANKING_LIMIT")
		v.BindEnv("logsdir", "DOCMETRICS_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "DOCMETRICS_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "DOCMETRICS_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "DOCMETRICS_LOGS_MAX_AGE_IN_DAYS")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		// Validate
		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.RankingLimit <= 0 {
		return fmt.Errorf("invalid ranking limit: %d", c.RankingLimit)
	}

	if c.DataDirectory == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.OutputDirectory == "" {
		return fmt.Errorf("output directory is required")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// SlogLevel maps the configured log level onto slog's levels
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
