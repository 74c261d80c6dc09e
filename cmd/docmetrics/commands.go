package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/config"
	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/logging"
	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/report"
	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/server"
)

const defaultShutdownTimeout = 30 * time.Second

// BuildCommand rebuilds the metrics report from the data directory
type BuildCommand struct{}

func (c *BuildCommand) Name() string { return "build" }

func (c *BuildCommand) Description() string {
	return "Merge CSV exports and rebuild the metrics report"
}

func (c *BuildCommand) Execute(ctx context.Context, args []string) error {
	cfg := config.GetConfig()
	logger := logging.NewLogger(cfg)

	builder := report.NewBuilder(cfg, logger)
	summary, err := builder.Run()
	if err != nil {
		return err
	}

	for _, project := range summary.Projects {
		logger.Info("Subproject built",
			slog.String("project", project.Name),
			slog.Int("total_views", project.TotalViews),
			slog.Int("traffic_sources", project.TrafficSources),
			slog.Int("search_sources", project.SearchSources))
	}
	return nil
}

// ServeCommand serves the built report over HTTP
type ServeCommand struct{}

func (c *ServeCommand) Name() string { return "serve" }

func (c *ServeCommand) Description() string {
	return "Serve the built report directory over HTTP"
}

func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	cfg := config.GetConfig()
	logger := logging.NewLogger(cfg)

	srv := server.New(cfg, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Listen()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	logger.Info("Shutting down report server")
	return srv.Shutdown(shutdownCtx)
}

// HelpCommand prints usage information
type HelpCommand struct{}

func (c *HelpCommand) Name() string { return "help" }

func (c *HelpCommand) Description() string { return "Show this help" }

func (c *HelpCommand) Execute(ctx context.Context, args []string) error {
	printUsage()
	return nil
}
