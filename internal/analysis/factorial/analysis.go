// Package factorial analyses 2^k r full factorial experiments: it estimates
// every main and interaction effect, splits the total variation into
// per-effect sums of squares plus error, and attaches a Student-t confidence
// interval to each effect.
package factorial

import (
	"fmt"
	"math"
	"sync"

	"gofactorial/domain/core"
	"gofactorial/domain/design"
	"gofactorial/internal"
	"gofactorial/internal/analysis/brief"
	"gofactorial/internal/signmatrix"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// Option configures an Analysis.
type Option func(*Analysis)

// WithCache makes the analysis fetch its sign matrix from c instead of the
// process-wide cache.
func WithCache(c *signmatrix.Cache) Option {
	return func(a *Analysis) { a.cache = c }
}

// WithLogger sets the logger used for debug and trace output.
func WithLogger(l *internal.Logger) Option {
	return func(a *Analysis) { a.logger = l }
}

// Analysis owns one grid, one confidence level and the results derived from
// them. Results are computed once and never change afterwards.
type Analysis struct {
	grid       *design.Grid
	confidence float64
	signs      *signmatrix.Matrix
	cache      *signmatrix.Cache
	logger     *internal.Logger
	dists      *brief.StatisticalDistributions

	once      sync.Once
	summary   *design.Summary
	err       error
	fitted    []float64
	effects   []float64
	ss        []float64
	residuals map[float64][]float64
	ordered   []design.Residual
}

// New validates its inputs and prepares an analysis. All validation happens
// here so that Analyze never fails on bad input.
func New(grid *design.Grid, confidence float64, opts ...Option) (*Analysis, error) {
	if grid == nil {
		return nil, core.ErrEmptyInput
	}
	if !(confidence > 0 && confidence < 1) {
		return nil, core.NewInvalidParameterError("confidence", confidence, "must be in (0, 1)")
	}
	if grid.R() < 2 {
		return nil, fmt.Errorf("%w: %d replicate(s), at least 2 are needed to estimate the error", core.ErrInvalidDesign, grid.R())
	}

	a := &Analysis{
		grid:       grid,
		confidence: confidence,
		cache:      signmatrix.Shared(),
		logger:     internal.Discard,
		dists:      brief.NewDistributions(),
	}
	for _, opt := range opts {
		opt(a)
	}

	signs, err := a.cache.Get(grid.K())
	if err != nil {
		return nil, err
	}
	a.signs = signs

	return a, nil
}

// Grid returns the analysed observations.
func (a *Analysis) Grid() *design.Grid { return a.grid }

// Confidence returns the confidence level of the intervals.
func (a *Analysis) Confidence() float64 { return a.confidence }

// DegreesOfFreedom returns the pooled error degrees of freedom, 2^k (r-1).
func (a *Analysis) DegreesOfFreedom() int {
	return a.grid.Len() * (a.grid.R() - 1)
}

// Analyze runs the decomposition. It is idempotent: later calls return the
// same Summary.
func (a *Analysis) Analyze() (*design.Summary, error) {
	a.once.Do(func() {
		a.summary, a.err = a.compute()
	})
	return a.summary, a.err
}

// Summary returns the results, analysing on first use.
func (a *Analysis) Summary() (*design.Summary, error) {
	return a.Analyze()
}

func (a *Analysis) compute() (*design.Summary, error) {
	n := a.grid.Len()
	r := a.grid.R()
	k := a.grid.K()
	log := a.logger

	log.Debug("analyzing 2^%d design with %d replicates at %.3g confidence", k, r, a.confidence)

	// Estimated response of each treatment.
	a.fitted = make([]float64, n)
	for row := 0; row < n; row++ {
		y, err := rowMean(a.grid.Row(row))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		a.fitted[row] = y
	}

	// SSE and residuals keyed by fitted value.
	sse := 0.0
	a.residuals = make(map[float64][]float64, n)
	a.ordered = make([]design.Residual, 0, n*r)
	for row := 0; row < n; row++ {
		y := a.fitted[row]
		for _, v := range a.grid.Row(row) {
			e := v - y
			sse += e * e
			a.residuals[y] = append(a.residuals[y], e)
			a.ordered = append(a.ordered, design.Residual{Row: row, Fitted: y, Value: e})
		}
	}

	if log.GetLevel() >= internal.LogLevelTrace {
		for row := 0; row < n; row++ {
			log.Trace("sign row %d: %v", row, mat.Row(nil, row, a.signs.Dense()))
		}
	}

	// effect[c] = (1/2^k) sum_row y[row] * M[row][c]
	var q mat.VecDense
	q.MulVec(a.signs.Dense().T(), mat.NewVecDense(n, a.fitted))
	q.ScaleVec(1/float64(n), &q)
	a.effects = mat.Col(nil, 0, &q)

	a.ss = make([]float64, n)
	ssy := 0.0
	for c, e := range a.effects {
		a.ss[c] = float64(n*r) * e * e
		ssy += a.ss[c]
	}
	ssy += sse
	sst := ssy - a.ss[0]

	stdDev := math.Sqrt(sse/float64(r*(r-1))) / float64(n)
	df := a.DegreesOfFreedom()

	summary := &design.Summary{
		K:                k,
		R:                r,
		Confidence:       a.confidence,
		DegreesOfFreedom: df,
		SSY:              ssy,
		SST:              sst,
		SSE:              sse,
		SSEFraction:      ratio(sse, sst),
		StdDev:           stdDev,
		Effects:          make([]design.EffectRow, n),
	}

	for c := 0; c < n; c++ {
		idx := design.EffectIndex(c)
		lower, upper := a.dists.TInterval(a.effects[c], stdDev, a.confidence, df)
		interval := design.Interval{Lower: lower, Upper: upper}

		importance := 0.0
		if c > 0 {
			importance = ratio(a.ss[c], sst)
		}

		summary.Effects[c] = design.EffectRow{
			Index:              idx,
			Label:              idx.Label(),
			Estimate:           a.effects[c],
			SS:                 a.ss[c],
			RelativeImportance: importance,
			Interval:           interval,
			ZeroCrossing:       interval.CrossesZero(),
		}
		log.Trace("q%s = %g, SS = %g, CI = (%g, %g)", idx.Label(), a.effects[c], a.ss[c], lower, upper)
	}

	log.Debug("SSY=%g SST=%g SSE=%g stddev=%g df=%d", ssy, sst, sse, stdDev, df)
	return summary, nil
}

// rowMean averages replicates relative to the first one, so identical
// replicates yield exactly that value and a zero residual.
func rowMean(values []float64) (float64, error) {
	base := values[0]
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = v - base
	}
	m, err := stats.Mean(deviations)
	if err != nil {
		return 0, err
	}
	return base + m, nil
}

// ratio returns num/den, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Effects returns a copy of the effect estimates indexed by EffectIndex.
func (a *Analysis) Effects() ([]float64, error) {
	if _, err := a.Analyze(); err != nil {
		return nil, err
	}
	return append([]float64(nil), a.effects...), nil
}

// SumsOfSquares returns a copy of the per-effect sums of squares.
func (a *Analysis) SumsOfSquares() ([]float64, error) {
	if _, err := a.Analyze(); err != nil {
		return nil, err
	}
	return append([]float64(nil), a.ss...), nil
}

// FittedValues returns the estimated response of each treatment row.
func (a *Analysis) FittedValues() ([]float64, error) {
	if _, err := a.Analyze(); err != nil {
		return nil, err
	}
	return append([]float64(nil), a.fitted...), nil
}

// ResidualsByFittedValue maps each fitted value to the residuals of the
// observations it predicts, in row then replicate order. Treatments with equal
// fitted values share a key. The returned map is a copy.
func (a *Analysis) ResidualsByFittedValue() (map[float64][]float64, error) {
	if _, err := a.Analyze(); err != nil {
		return nil, err
	}
	out := make(map[float64][]float64, len(a.residuals))
	for y, rs := range a.residuals {
		out[y] = append([]float64(nil), rs...)
	}
	return out, nil
}

// Residuals returns every residual in row then replicate order.
func (a *Analysis) Residuals() ([]design.Residual, error) {
	if _, err := a.Analyze(); err != nil {
		return nil, err
	}
	return append([]design.Residual(nil), a.ordered...), nil
}

// Significant returns the effects, grand mean excluded, whose interval does
// not contain zero.
func (a *Analysis) Significant() ([]design.EffectRow, error) {
	s, err := a.Analyze()
	if err != nil {
		return nil, err
	}
	var out []design.EffectRow
	for _, e := range s.Effects[1:] {
		if e.Interval.Lower > 0 || e.Interval.Upper < 0 {
			out = append(out, e)
		}
	}
	return out, nil
}
