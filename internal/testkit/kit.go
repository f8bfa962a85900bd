package testkit

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"gofactorial/domain/design"
	"gofactorial/internal/signmatrix"
)

// GridGeneratorConfig describes a synthetic 2^k r experiment.
type GridGeneratorConfig struct {
	Factors    int
	Replicates int
	// Effects maps effect labels ("0", "A", "AB", ...) to their true value.
	Effects map[string]float64
	// Noise is the standard deviation of the Gaussian error added to each observation.
	Noise float64
	Seed  int64
}

// GridGenerator produces deterministic observation grids for tests.
type GridGenerator struct {
	config GridGeneratorConfig
	rng    *rand.Rand
}

// NewGridGenerator creates a generator seeded from config.Seed
func NewGridGenerator(config GridGeneratorConfig) *GridGenerator {
	return &GridGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns 2^k rows of r observations. The noiseless response of row
// is sum_c effect[c] * M[row][c], so an exact analysis recovers the effects.
func (g *GridGenerator) Generate() ([][]float64, error) {
	k, r := g.config.Factors, g.config.Replicates
	if k <= 0 || k > 10 || r <= 0 {
		return nil, fmt.Errorf("unsupported synthetic design k=%d r=%d", k, r)
	}

	n := 1 << k
	effects := make([]float64, n)
	for label, value := range g.config.Effects {
		idx, ok := design.ParseEffect(label)
		if !ok || idx >= 1<<k {
			return nil, fmt.Errorf("unknown effect %q for k=%d", label, k)
		}
		effects[idx] = value
	}

	rows := make([][]float64, n)
	for row := 0; row < n; row++ {
		// summed in effect index order so equal seeds give bit-identical rows
		mean := 0.0
		for idx, value := range effects {
			if value != 0 {
				mean += value * signmatrix.Sign(row, idx)
			}
		}
		rows[row] = make([]float64, r)
		for j := range rows[row] {
			rows[row][j] = mean + g.config.Noise*g.rng.NormFloat64()
		}
	}
	return rows, nil
}

// MustGrid generates and validates a grid or fails the test.
func MustGrid(t testing.TB, config GridGeneratorConfig) *design.Grid {
	t.Helper()
	rows, err := NewGridGenerator(config).Generate()
	if err != nil {
		t.Fatalf("generate grid: %v", err)
	}
	grid, err := design.LoadObservations(rows)
	if err != nil {
		t.Fatalf("load grid: %v", err)
	}
	return grid
}

// FormatRows renders rows in the whitespace-separated observation file format.
func FormatRows(rows [][]float64) string {
	var b strings.Builder
	for _, row := range rows {
		for j, v := range row {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteFile writes content to name inside a per-test temporary directory and
// returns the full path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
