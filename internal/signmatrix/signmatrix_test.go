package signmatrix

import (
	"strings"
	"sync"
	"testing"

	"gofactorial/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Symmetric(t *testing.T) {
	for k := 1; k <= 6; k++ {
		m, err := Build(k)
		require.NoError(t, err)
		require.Equal(t, 1<<k, m.Size())

		for row := 0; row < m.Size(); row++ {
			for col := 0; col < m.Size(); col++ {
				if m.At(row, col) != m.At(col, row) {
					t.Fatalf("k=%d: M[%d][%d] != M[%d][%d]", k, row, col, col, row)
				}
			}
		}
	}
}

func TestBuild_Orthogonal(t *testing.T) {
	for k := 1; k <= 6; k++ {
		m, err := Build(k)
		require.NoError(t, err)
		n := m.Size()

		for a := 0; a < n; a++ {
			for b := 0; b < n; b++ {
				dot := 0.0
				for row := 0; row < n; row++ {
					dot += m.At(row, a) * m.At(row, b)
				}
				want := 0.0
				if a == b {
					want = float64(n)
				}
				if dot != want {
					t.Fatalf("k=%d: column %d . column %d = %v, want %v", k, a, b, dot, want)
				}
			}
		}
	}
}

func TestBuild_KnownTable(t *testing.T) {
	m, err := Build(2)
	require.NoError(t, err)

	want := [][]float64{
		{1, 1, 1, 1},
		{1, -1, 1, -1},
		{1, 1, -1, -1},
		{1, -1, -1, 1},
	}
	for row := range want {
		assert.Equal(t, want[row], m.Column(row), "column %d", row)
	}
	assert.Equal(t, 2, m.K())
	r, c := m.Dense().Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 4, c)
}

func TestBuild_InvalidK(t *testing.T) {
	for _, k := range []int{-1, 0, MaxDenseFactors + 1, 16, 26, 27, 64} {
		m, err := Build(k)
		assert.Nil(t, m)
		assert.True(t, core.IsInvalidParameter(err), "k=%d: %v", k, err)
	}
}

func TestBuild_LargestDense(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates the largest supported matrix")
	}
	m, err := Build(MaxDenseFactors)
	require.NoError(t, err)
	assert.Equal(t, 1<<MaxDenseFactors, m.Size())
}

func TestCache_RejectsUnsupportedK(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	m, err := c.Get(26)
	assert.Nil(t, m)
	assert.True(t, core.IsInvalidParameter(err))
	assert.Equal(t, 0, c.Len())
}

func TestParity(t *testing.T) {
	tests := []struct {
		in   uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{3, 0},
		{7, 1},
		{0xFFFFFFFF, 0},
		{0x80000001, 0},
		{1 << 63, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Parity(tt.in), "Parity(%#x)", tt.in)
	}
}

func TestRender_TwoFactors(t *testing.T) {
	out, err := Render(2)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "AB", lines[0])
	assert.Equal(t, "++", lines[1])
	for _, line := range lines[1:] {
		assert.Len(t, line, 2)
		assert.Empty(t, strings.Trim(line, "+-"))
	}
	assert.Equal(t, []string{"AB", "++", "-+", "+-", "--"}, lines)
}

func TestRender_MatchesMatrix(t *testing.T) {
	for k := 1; k <= 5; k++ {
		m, err := Build(k)
		require.NoError(t, err)
		out, err := Render(k)
		require.NoError(t, err)
		assert.Equal(t, out, m.Render())
	}
}

func TestRender_Header(t *testing.T) {
	out, err := Render(4)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ABCD\n"))
	assert.False(t, strings.HasSuffix(out, "\n"))

	_, err = Render(0)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestCache_ReusesMatrix(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	a, err := c.Get(3)
	require.NoError(t, err)
	b, err := c.Get(3)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, c.Len())

	_, err = c.Get(0)
	assert.True(t, core.IsInvalidParameter(err))
	assert.Equal(t, 1, c.Len())
}

func TestCache_Evicts(t *testing.T) {
	c, err := NewCache(2)
	require.NoError(t, err)

	for k := 1; k <= 4; k++ {
		_, err := c.Get(k)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	const workers = 16
	results := make([]*Matrix, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := c.Get(5)
			if err == nil {
				results[i] = m
			}
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		require.NotNil(t, results[i])
		assert.Same(t, results[0], results[i])
	}
}

func TestShared(t *testing.T) {
	require.NotNil(t, Shared())
	m, err := Shared().Get(1)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())
}
