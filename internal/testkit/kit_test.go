package testkit

import (
	"testing"
)

func TestGridGenerator_Deterministic(t *testing.T) {
	config := GridGeneratorConfig{
		Factors:    3,
		Replicates: 4,
		Effects:    map[string]float64{"0": 10, "A": 2, "BC": -1},
		Noise:      0.5,
		Seed:       42,
	}

	a, err := NewGridGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := NewGridGenerator(config).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(a) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(a))
	}
	for i := range a {
		if len(a[i]) != 4 {
			t.Fatalf("row %d: expected 4 replicates, got %d", i, len(a[i]))
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Errorf("row %d col %d differs between runs with the same seed", i, j)
			}
		}
	}
}

func TestGridGenerator_Noiseless(t *testing.T) {
	rows, err := NewGridGenerator(GridGeneratorConfig{
		Factors:    2,
		Replicates: 2,
		Effects:    map[string]float64{"0": 5, "A": 1},
	}).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// M[row][A] is +1 for even rows and -1 for odd rows
	want := []float64{6, 4, 6, 4}
	for i, row := range rows {
		for _, v := range row {
			if v != want[i] {
				t.Errorf("row %d: got %v, want %v", i, v, want[i])
			}
		}
	}
}

func TestGridGenerator_Rejects(t *testing.T) {
	bad := []GridGeneratorConfig{
		{Factors: 0, Replicates: 2},
		{Factors: 2, Replicates: 0},
		{Factors: 2, Replicates: 2, Effects: map[string]float64{"C": 1}},
		{Factors: 2, Replicates: 2, Effects: map[string]float64{"?": 1}},
	}
	for _, config := range bad {
		if _, err := NewGridGenerator(config).Generate(); err == nil {
			t.Errorf("expected error for %+v", config)
		}
	}
}

func TestFormatRows(t *testing.T) {
	got := FormatRows([][]float64{{1, 2.5}, {-3, 4e-9}})
	want := "1 2.5\n-3 4e-09\n"
	if got != want {
		t.Errorf("FormatRows = %q, want %q", got, want)
	}
}

func TestGridGenerator_SumsInEffectOrder(t *testing.T) {
	// 1e16 + 1 rounds back to 1e16, so only effect index order yields 0 here
	config := GridGeneratorConfig{
		Factors:    2,
		Replicates: 1,
		Effects:    map[string]float64{"0": 1e16, "A": 1, "B": -1e16},
	}
	for i := 0; i < 50; i++ {
		rows, err := NewGridGenerator(config).Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if rows[0][0] != 0 {
			t.Fatalf("run %d: row 0 = %v, want 0", i, rows[0][0])
		}
	}
}
