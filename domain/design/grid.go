package design

import (
	"math"

	"gofactorial/domain/core"
)

// MaxFactors bounds k so that factor letters A-Z suffice and the 4^k sign
// matrix stays addressable.
const MaxFactors = 26

// Grid is a validated 2^k x r observation table. Row i holds the replicates
// of treatment combination i, where bit p of i set means factor p is high.
type Grid struct {
	rows [][]float64
	k    int
	r    int
}

// LoadObservations validates rows and returns an immutable Grid.
// The input slices are copied.
func LoadObservations(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, core.ErrEmptyInput
	}

	r := len(rows[0])
	copied := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != r {
			return nil, core.NewRaggedRowError(i, len(row), r)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, core.NewBadValueError(i, j, "value is not finite")
			}
		}
		copied[i] = append([]float64(nil), row...)
	}

	if r == 0 {
		return nil, core.ErrNoReplicates
	}

	n := len(rows)
	k := int(math.Round(math.Log2(float64(n))))
	if k == 0 {
		return nil, core.ErrNoFactors
	}
	if k > MaxFactors {
		return nil, core.NewInvalidParameterError("k", k, "at most 26 factors are supported")
	}
	if 1<<k != n {
		return nil, core.NewRowCountError(n)
	}

	return &Grid{rows: copied, k: k, r: r}, nil
}

// K returns the number of factors.
func (g *Grid) K() int { return g.k }

// R returns the number of replicates per treatment.
func (g *Grid) R() int { return g.r }

// Len returns the number of treatment combinations, 2^k.
func (g *Grid) Len() int { return len(g.rows) }

// Row returns the replicates of one treatment. Callers must not modify it.
func (g *Grid) Row(i int) []float64 { return g.rows[i] }

// Rows returns a deep copy of the observations.
func (g *Grid) Rows() [][]float64 {
	out := make([][]float64, len(g.rows))
	for i, row := range g.rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Fingerprint hashes the grid contents.
func (g *Grid) Fingerprint() core.Hash {
	return core.ComputeGridHash(g.rows)
}

// Treatment describes which factors are high in treatment row i, e.g. "AC".
// The all-low treatment is rendered as "(1)", the classical Yates name.
func (g *Grid) Treatment(i int) string {
	letters := EffectIndex(i).Letters()
	if letters == "" {
		return "(1)"
	}
	return letters
}
