// Package server serves an already-built report directory over HTTP.
package server

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/config"
)

// HealthStatus represents the health check response
type HealthStatus struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	ReportStatus string    `json:"report_status"`
}

// Server hosts the static report output plus a health endpoint.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	app    *fiber.App
}

// New builds the HTTP server over the configured output directory.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: true,
	})

	s := &Server{cfg: cfg, logger: logger, app: app}

	app.Get("/health", s.healthAction)
	app.Static("/", cfg.OutputDirectory, fiber.Static{
		Index: "index.html",
	})

	return s
}

// healthAction reports whether a built report is present to serve.
func (s *Server) healthAction(ctx *fiber.Ctx) error {
	reportStatus := "ok"
	if _, err := os.Stat(s.cfg.OutputDirectory); err != nil {
		reportStatus = "missing"
		s.logger.Warn("Report output directory unavailable",
			slog.String("dir", s.cfg.OutputDirectory), slog.Any("error", err))
	}

	health := HealthStatus{
		Status:       "ok",
		Timestamp:    time.Now(),
		ReportStatus: reportStatus,
	}
	if reportStatus != "ok" {
		health.Status = "degraded"
	}

	return ctx.JSON(health)
}

// Listen blocks serving HTTP on the configured port.
func (s *Server) Listen() error {
	s.logger.Info("Serving report",
		slog.String("port", s.cfg.AppPort),
		slog.String("dir", s.cfg.OutputDirectory))
	return s.app.Listen(":" + s.cfg.AppPort)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
