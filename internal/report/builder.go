// Package report builds the static metrics report: it scans a data
// directory of subproject CSV exports, merges overlapping snapshots per
// subproject, and writes merged CSV artifacts, ranked bar charts, and a
// summary index page into the output directory.
package report

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/config"
	"github.com/ericsnekbytes/jupyter-docs-metrics/internal/metrics"
)

// ProjectSummary holds the computed results for one subproject.
type ProjectSummary struct {
	Name string

	TrafficSources int
	SearchSources  int

	TotalViews  int
	TopPages    []metrics.DimensionCount
	TopVersions []metrics.DimensionCount
	TopQueries  []metrics.DimensionCount

	// Paths relative to the output directory, slash-separated for links.
	MergedTrafficCSV string
	MergedSearchCSV  string
	PagesChart       string
	QueriesChart     string
}

// Summary is the result of one full report build.
type Summary struct {
	GeneratedAt time.Time
	Projects    []ProjectSummary
}

// Builder runs report builds. One build per call to Run; Builders hold no
// state between runs.
type Builder struct {
	cfg    *config.Config
	logger *slog.Logger
	tables io.Writer
}

// Option configures a Builder.
type Option func(*Builder)

// WithTableOutput redirects the per-project ranking tables (stdout by
// default).
func WithTableOutput(w io.Writer) Option {
	return func(b *Builder) { b.tables = w }
}

// NewBuilder creates a report builder.
func NewBuilder(cfg *config.Config, logger *slog.Logger, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, logger: logger, tables: os.Stdout}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run rebuilds the report from scratch. The output directory is recreated,
// then every immediate subdirectory of the data directory is built as a
// subproject. A broken subproject is logged and skipped so one corrupted
// export cannot take down the whole report; the per-source merge itself
// stays fail-fast inside the metrics engine.
func (b *Builder) Run() (*Summary, error) {
	b.logger.Info("Starting metrics build",
		slog.String("data_dir", b.cfg.DataDirectory),
		slog.String("output_dir", b.cfg.OutputDirectory))

	if err := resetDir(b.cfg.OutputDirectory); err != nil {
		return nil, fmt.Errorf("report: resetting output directory: %w", err)
	}

	entries, err := os.ReadDir(b.cfg.DataDirectory)
	if err != nil {
		return nil, fmt.Errorf("report: reading data directory: %w", err)
	}

	summary := &Summary{GeneratedAt: time.Now()}
	for _, entry := range entries {
		if !entry.IsDir() {
			b.logger.Warn("Skipping orphan file in data directory",
				slog.String("name", entry.Name()))
			continue
		}

		project, err := b.buildProject(entry.Name())
		if err != nil {
			b.logger.Error("Failed to build subproject report",
				slog.String("project", entry.Name()), slog.Any("error", err))
			continue
		}
		if project == nil {
			continue
		}
		summary.Projects = append(summary.Projects, *project)
	}

	indexPath := filepath.Join(b.cfg.OutputDirectory, "index.html")
	if err := writeIndexPage(indexPath, summary); err != nil {
		return nil, fmt.Errorf("report: writing index page: %w", err)
	}

	b.logger.Info("Metrics build complete",
		slog.Int("projects", len(summary.Projects)),
		slog.String("index", indexPath))
	return summary, nil
}

// buildProject merges one subproject's exports and writes its artifacts.
// Returns (nil, nil) when the subproject holds no usable exports.
func (b *Builder) buildProject(name string) (*ProjectSummary, error) {
	projectDir := filepath.Join(b.cfg.DataDirectory, name)
	traffic, search := b.classifySources(projectDir)
	if len(traffic) == 0 && len(search) == 0 {
		b.logger.Warn("No valid metrics found for subproject", slog.String("project", name))
		return nil, nil
	}

	outDir := filepath.Join(b.cfg.OutputDirectory, name)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	project := &ProjectSummary{
		Name:           name,
		TrafficSources: len(traffic),
		SearchSources:  len(search),
	}
	slug := slugify(name)
	limit := b.cfg.RankingLimit

	if len(traffic) > 0 {
		m, err := metrics.Build(traffic)
		if err != nil {
			return nil, fmt.Errorf("merging traffic exports: %w", err)
		}
		b.logger.Info("Merged traffic exports", slog.String("project", name),
			slog.Int("sources", len(traffic)), slog.Int("rows", m.Len()))

		csvName := slug + "_traffic.csv"
		if err := writeMergedCSV(filepath.Join(outDir, csvName), m.Sheet()); err != nil {
			return nil, err
		}
		project.MergedTrafficCSV = path.Join(name, csvName)

		if project.TotalViews, err = m.TotalViews(); err != nil {
			return nil, err
		}
		if project.TopPages, err = m.MostPopularPages(limit); err != nil {
			return nil, err
		}
		if project.TopVersions, err = m.MostPopularVersions(limit); err != nil {
			return nil, err
		}

		chart := popularityChart("Popular Pages", "Views", project.TopPages)
		if err := writeChart(filepath.Join(outDir, "popular_pages.html"), chart); err != nil {
			return nil, err
		}
		project.PagesChart = path.Join(name, "popular_pages.html")

		fmt.Fprintln(b.tables, rankingTable(name+": popular pages", project.TopPages))
	}

	if len(search) > 0 {
		m, err := metrics.Build(search)
		if err != nil {
			return nil, fmt.Errorf("merging search exports: %w", err)
		}
		b.logger.Info("Merged search exports", slog.String("project", name),
			slog.Int("sources", len(search)), slog.Int("rows", m.Len()))

		csvName := slug + "_search.csv"
		if err := writeMergedCSV(filepath.Join(outDir, csvName), m.Sheet()); err != nil {
			return nil, err
		}
		project.MergedSearchCSV = path.Join(name, csvName)

		if project.TopQueries, err = m.MostPopularQueries(limit); err != nil {
			return nil, err
		}

		chart := popularityChart("Popular Queries", "Searches", project.TopQueries)
		if err := writeChart(filepath.Join(outDir, "popular_queries.html"), chart); err != nil {
			return nil, err
		}
		project.QueriesChart = path.Join(name, "popular_queries.html")

		fmt.Fprintln(b.tables, rankingTable(name+": popular queries", project.TopQueries))
	}

	return project, nil
}

// classifySources walks a subproject directory and splits its CSV files by
// export shape. Unreadable or unrecognizable files are logged and skipped.
// Results are sorted by path; exports carry date-stamped names, so sorting
// doubles as oldest-to-newest merge order.
func (b *Builder) classifySources(projectDir string) (traffic, search []string) {
	walkErr := filepath.WalkDir(projectDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			b.logger.Warn("Skipping unreadable path", slog.String("path", p), slog.Any("error", err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(p), ".csv") {
			b.logger.Warn("Skipping non-CSV file", slog.String("path", p))
			return nil
		}

		m, err := loadExport(p)
		if err != nil {
			b.logger.Error("Skipping unusable CSV", slog.String("path", p), slog.Any("error", err))
			return nil
		}
		if m.IsEmpty() {
			b.logger.Warn("Skipping CSV with no data rows", slog.String("path", p))
			return nil
		}

		switch m.Kind() {
		case metrics.KindTraffic:
			traffic = append(traffic, p)
			b.logger.Debug("Traffic data found", slog.String("path", p))
		case metrics.KindSearch:
			search = append(search, p)
			b.logger.Debug("Search data found", slog.String("path", p))
		}
		return nil
	})
	if walkErr != nil {
		b.logger.Error("Walking subproject directory failed",
			slog.String("dir", projectDir), slog.Any("error", walkErr))
	}

	sort.Strings(traffic)
	sort.Strings(search)
	return traffic, search
}

func loadExport(p string) (*metrics.Metrics, error) {
	return metrics.Build([]string{p})
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// slugify reduces a subproject name to a filename-safe token, matching the
// naming of the published artifacts.
func slugify(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}
