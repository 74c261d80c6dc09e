// Package logging builds the application's structured logger: slog output
// mirrored to stdout and to a size-rotated build log on disk.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/config"
)

// NewLogger returns a logger writing to stdout and to a rotating file under
// the configured logs directory.
func NewLogger(cfg *config.Config) *slog.Logger {
	rotating := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogsDirectory, cfg.AppName+".log"),
		MaxSize:    cfg.LogsMaxSizeInMb,
		MaxBackups: cfg.LogsMaxBackups,
		MaxAge:     cfg.LogsMaxAgeInDays,
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, rotating), &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})
	return slog.New(handler)
}
