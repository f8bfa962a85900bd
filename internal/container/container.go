package container

import (
	"fmt"

	"gofactorial/adapters/export"
	"gofactorial/adapters/report"
	"gofactorial/app"
	"gofactorial/internal"
	"gofactorial/internal/config"
	"gofactorial/internal/signmatrix"
	"gofactorial/ports"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Shared across every analysis of the process
	SignCache *signmatrix.Cache

	AnalysisService *app.AnalysisService
	BatchService    *app.BatchService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = internal.Discard
	}

	cache, err := signmatrix.NewCache(cfg.Runtime.SignCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create sign matrix cache: %w", err)
	}

	analyses := app.NewAnalysisService(nil, cache, logger)
	c := &Container{
		Config:          cfg,
		Logger:          logger,
		SignCache:       cache,
		AnalysisService: analyses,
		BatchService:    app.NewBatchService(analyses, cfg.Runtime.Workers, logger),
	}

	logger.Debug("container initialized: workers=%d sign cache=%d", cfg.Runtime.Workers, cfg.Runtime.SignCacheSize)
	return c, nil
}

// Reporter returns the reporter for the configured output format
func (c *Container) Reporter() (ports.Reporter, error) {
	return report.New(c.Config.Output.Format)
}

// Export pairs a residual exporter with the file it writes
type Export struct {
	Path     string
	Exporter ports.ResidualExporter
}

// Exports returns the configured residual exports, scatter before Q-Q
func (c *Container) Exports() []Export {
	var exports []Export
	if path := c.Config.Output.ResidualsPath; path != "" {
		exports = append(exports, Export{Path: path, Exporter: export.ScatterForPath(path)})
	}
	if path := c.Config.Output.QQNormPath; path != "" {
		exports = append(exports, Export{Path: path, Exporter: export.QQForPath(path)})
	}
	return exports
}
