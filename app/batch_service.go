package app

import (
	"context"

	"gofactorial/internal"

	"golang.org/x/sync/errgroup"
)

// BatchService analyzes several files concurrently. Each file gets its own
// analysis; the sign matrix cache of the underlying service is shared.
type BatchService struct {
	analyses *AnalysisService
	workers  int
	logger   *internal.Logger
}

// NewBatchService creates a batch service running at most workers analyses
// at once
func NewBatchService(analyses *AnalysisService, workers int, logger *internal.Logger) *BatchService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = internal.Discard
	}
	return &BatchService{
		analyses: analyses,
		workers:  workers,
		logger:   logger,
	}
}

// Run analyzes every request. Results are in request order. The first
// failure cancels the remaining work and is returned; no partial results are
// returned alongside it.
func (b *BatchService) Run(ctx context.Context, reqs []AnalysisRequest) ([]*AnalysisResult, error) {
	results := make([]*AnalysisResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := b.analyses.Run(gctx, req)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.logger.Debug("batch of %d analyses finished with %d workers", len(reqs), b.workers)
	return results, nil
}
