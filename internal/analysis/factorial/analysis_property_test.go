package factorial

import (
	"math"
	"testing"

	"gofactorial/domain/design"
	"gofactorial/internal/testkit"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func analyzeSynthetic(k, r int, noise float64, seed int64) (*design.Summary, *design.Grid, bool) {
	rows, err := testkit.NewGridGenerator(testkit.GridGeneratorConfig{
		Factors:    k,
		Replicates: r,
		Effects:    map[string]float64{"0": 12, "A": 3, "AB": -1.5},
		Noise:      noise,
		Seed:       seed,
	}).Generate()
	if err != nil {
		return nil, nil, false
	}
	grid, err := design.LoadObservations(rows)
	if err != nil {
		return nil, nil, false
	}
	a, err := New(grid, 0.9)
	if err != nil {
		return nil, nil, false
	}
	s, err := a.Analyze()
	if err != nil {
		return nil, nil, false
	}
	return s, grid, true
}

func TestDecomposition_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("sum of effect SS plus SSE equals SSY and SST = SSY - SS0", prop.ForAll(
		func(k, r int, noise float64, seed int64) bool {
			s, _, ok := analyzeSynthetic(k, r, noise, seed)
			if !ok {
				return false
			}
			total := s.SSE
			for _, e := range s.Effects {
				total += e.SS
			}
			return closeTo(total, s.SSY) && closeTo(s.SST, s.SSY-s.Effects[0].SS)
		},
		gen.IntRange(2, 5),
		gen.IntRange(2, 4),
		gen.Float64Range(0, 5),
		gen.Int64(),
	))

	properties.Property("SS0 equals 2^k r times the squared grand mean", prop.ForAll(
		func(k, r int, noise float64, seed int64) bool {
			s, grid, ok := analyzeSynthetic(k, r, noise, seed)
			if !ok {
				return false
			}
			sum := 0.0
			for i := 0; i < grid.Len(); i++ {
				for _, v := range grid.Row(i) {
					sum += v
				}
			}
			mean := sum / float64(grid.Len()*grid.R())
			return closeTo(s.Effects[0].SS, float64(grid.Len()*grid.R())*mean*mean)
		},
		gen.IntRange(2, 5),
		gen.IntRange(2, 4),
		gen.Float64Range(0, 5),
		gen.Int64(),
	))

	properties.Property("intervals are centred on the estimate", prop.ForAll(
		func(k, r int, noise float64, seed int64) bool {
			s, _, ok := analyzeSynthetic(k, r, noise, seed)
			if !ok {
				return false
			}
			for _, e := range s.Effects {
				mid := (e.Interval.Lower + e.Interval.Upper) / 2
				if !closeTo(mid, e.Estimate) || e.Interval.Lower > e.Interval.Upper {
					return false
				}
				if e.ZeroCrossing != (e.Interval.Lower < 0 && e.Interval.Upper > 0) {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 5),
		gen.IntRange(2, 4),
		gen.Float64Range(0, 5),
		gen.Int64(),
	))

	properties.Property("identical replicates give zero SSE and zero std dev", prop.ForAll(
		func(k, r int, seed int64) bool {
			s, _, ok := analyzeSynthetic(k, r, 0, seed)
			return ok && s.SSE == 0 && s.StdDev == 0
		},
		gen.IntRange(2, 5),
		gen.IntRange(2, 4),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
