package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gofactorial/adapters/observations"
	"gofactorial/domain/core"
	"gofactorial/domain/design"
	"gofactorial/internal"
	"gofactorial/internal/analysis/factorial"
	"gofactorial/internal/errors"
	"gofactorial/internal/signmatrix"
	"gofactorial/ports"
)

// ReaderFactory picks the observation reader for a path
type ReaderFactory func(path string) ports.ObservationReader

// AnalysisService runs one factorial analysis from an observation file
type AnalysisService struct {
	readers ReaderFactory
	cache   *signmatrix.Cache
	logger  *internal.Logger
}

// AnalysisRequest defines the inputs for a single analysis
type AnalysisRequest struct {
	Path       string
	Confidence float64
	Factors    int        // optional, checked against the grid when non-zero
	RunID      core.RunID // optional, will be generated if empty
}

// AnalysisResult contains everything a report or export needs
type AnalysisResult struct {
	RunID       core.RunID        `json:"run_id"`
	Source      string            `json:"source"`
	Fingerprint core.Hash         `json:"fingerprint"`
	Summary     *design.Summary   `json:"summary"`
	Residuals   []design.Residual `json:"residuals"`
	RuntimeMs   int64             `json:"runtime_ms"`
}

// NewAnalysisService creates an analysis service. A nil readers factory
// selects readers by file extension; a nil cache uses the shared one.
func NewAnalysisService(readers ReaderFactory, cache *signmatrix.Cache, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.Discard
	}
	if readers == nil {
		readers = func(path string) ports.ObservationReader {
			return observations.ForPath(path, logger)
		}
	}
	if cache == nil {
		cache = signmatrix.Shared()
	}
	return &AnalysisService{
		readers: readers,
		cache:   cache,
		logger:  logger,
	}
}

// Run reads, validates and analyzes one file
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	startTime := time.Now()

	runID := req.RunID
	if runID == "" {
		runID = core.NewRunID()
	}
	logger := s.logger.With("run", runID.String())

	rows, err := s.readers(req.Path).Read(ctx, req.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", req.Path)
	}

	grid, err := design.LoadObservations(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid observations in %s", req.Path)
	}
	if req.Factors > 0 && req.Factors != grid.K() {
		return nil, errors.Wrap(
			fmt.Errorf("%w: %d rows imply k = %d, expected k = %d", core.ErrInvalidDesign, grid.Len(), grid.K(), req.Factors),
			fmt.Sprintf("unexpected design in %s", req.Path))
	}

	analysis, err := factorial.New(grid, req.Confidence,
		factorial.WithCache(s.cache), factorial.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot analyze %s", req.Path)
	}
	summary, err := analysis.Analyze()
	if err != nil {
		return nil, errors.Wrapf(err, "analysis of %s failed", req.Path)
	}
	residuals, err := analysis.Residuals()
	if err != nil {
		return nil, errors.Wrapf(err, "analysis of %s failed", req.Path)
	}

	result := &AnalysisResult{
		RunID:       runID,
		Source:      req.Path,
		Fingerprint: grid.Fingerprint(),
		Summary:     summary,
		Residuals:   residuals,
		RuntimeMs:   time.Since(startTime).Milliseconds(),
	}
	logger.Debug("analyzed %s: k=%d r=%d in %dms", req.Path, grid.K(), grid.R(), result.RuntimeMs)
	return result, nil
}

// Report renders result with reporter
func (s *AnalysisService) Report(w io.Writer, result *AnalysisResult, reporter ports.Reporter, brief bool) error {
	opts := ports.ReportOptions{
		Brief:       brief,
		Source:      result.Source,
		RunID:       result.RunID,
		Fingerprint: result.Fingerprint,
	}
	if err := reporter.Report(w, result.Summary, opts); err != nil {
		return errors.IOError(fmt.Sprintf("failed to write %s report", reporter.Name()), err)
	}
	return nil
}

// Export writes the residuals of result to path, replacing any existing file
func (s *AnalysisService) Export(path string, result *AnalysisResult, exporter ports.ResidualExporter) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.IOError(fmt.Sprintf("failed to create %s", path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IOError(fmt.Sprintf("failed to close %s", path), cerr)
		}
	}()

	if err := exporter.Export(f, result.Residuals); err != nil {
		return errors.Wrapf(err, "failed to export %s", exporter.Name())
	}
	s.logger.Debug("wrote %d residuals to %s", len(result.Residuals), path)
	return nil
}
