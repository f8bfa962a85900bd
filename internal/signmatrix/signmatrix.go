// Package signmatrix builds the ±1 contrast table of a 2^k full factorial
// design. Entry (row, col) is +1 when row&col has an even number of set bits
// and -1 otherwise, which reproduces the classical Yates sign table.
package signmatrix

import (
	"fmt"
	"math/bits"
	"strings"

	"gofactorial/domain/core"
	"gofactorial/domain/design"

	"gonum.org/v1/gonum/mat"
)

// MaxDenseFactors bounds the k for which a full matrix is materialized. The
// matrix holds 4^k float64 values, 128 MiB at k = 12.
const MaxDenseFactors = 12

// Matrix is an immutable 2^k x 2^k sign matrix.
type Matrix struct {
	k     int
	dense *mat.Dense
}

// Parity returns the popcount parity of x: 0 for even, 1 for odd.
func Parity(x uint64) int {
	return bits.OnesCount64(x) & 1
}

// Sign returns the contrast coefficient for a treatment row and effect column.
func Sign(row, col int) float64 {
	if Parity(uint64(row&col)) == 0 {
		return 1
	}
	return -1
}

func checkK(k int) error {
	if k <= 0 {
		return core.NewInvalidParameterError("k", k, "must be positive")
	}
	if k > design.MaxFactors {
		return core.NewInvalidParameterError("k", k, "at most 26 factors are supported")
	}
	return nil
}

// Build returns the sign matrix for k factors. k above MaxDenseFactors is
// rejected rather than allocated.
func Build(k int) (*Matrix, error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	if k > MaxDenseFactors {
		return nil, core.NewInvalidParameterError("k", k, fmt.Sprintf("sign matrix is limited to %d factors", MaxDenseFactors))
	}

	n := 1 << k
	data := make([]float64, n*n)
	for row := 0; row < n; row++ {
		base := row * n
		for col := 0; col < n; col++ {
			data[base+col] = Sign(row, col)
		}
	}

	return &Matrix{k: k, dense: mat.NewDense(n, n, data)}, nil
}

// K returns the number of factors.
func (m *Matrix) K() int { return m.k }

// Size returns 2^k.
func (m *Matrix) Size() int { return 1 << m.k }

// At returns M[row][col].
func (m *Matrix) At(row, col int) float64 { return m.dense.At(row, col) }

// Dense exposes the matrix for gonum products. The returned value must be
// treated as read-only: it is shared by every analysis with the same k.
func (m *Matrix) Dense() mat.Matrix { return m.dense }

// Column copies effect column col.
func (m *Matrix) Column(col int) []float64 {
	return mat.Col(nil, col, m.dense)
}

// Render formats the factor-level table of m, see Render.
func (m *Matrix) Render() string {
	return render(m.k, m.At)
}

// Render returns a header line with factor letters A.. followed by one line
// per treatment row. Character c of a row is '+' when M[row][2^c] > 0.
// Only the single-factor columns are consulted, so the full matrix is not built.
func Render(k int) (string, error) {
	if err := checkK(k); err != nil {
		return "", err
	}
	return render(k, Sign), nil
}

func render(k int, at func(row, col int) float64) string {
	var b strings.Builder
	n := 1 << k
	b.Grow((k + 1) * (n + 1))

	for pos := 0; pos < k; pos++ {
		b.WriteString(design.EffectIndex(1 << pos).Letters())
	}

	for row := 0; row < n; row++ {
		b.WriteByte('\n')
		for col := 0; col < k; col++ {
			if at(row, 1<<col) > 0 {
				b.WriteByte('+')
			} else {
				b.WriteByte('-')
			}
		}
	}

	return b.String()
}
