// SPDX-License-Identifier: MIT

package bmf_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolmf/basis"
	"github.com/katalvlaran/boolmf/binmat"
)

// almostFull is the 4×4 all-ones matrix with X[3,3]=0.
func almostFull() *binmat.Matrix {
	return binmat.MustFromDense([][]float64{
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 1},
		{1, 1, 1, 0},
	})
}

// twoBlocks is the 4×4 block-diagonal matrix with two 2×2 blocks of ones.
func twoBlocks() *binmat.Matrix {
	return binmat.MustFromDense([][]float64{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 1},
	})
}

// vec builds a length-n vector with the listed bits set.
func vec(t testing.TB, n int, idx ...int) *bitset.BitSet {
	t.Helper()
	v, err := binmat.VecFromIndices(n, idx...)
	require.NoError(t, err)

	return v
}

// plantedMatrix returns the OR of k random rectangles on an m×n grid with a
// fixed seed, without noise.
func plantedMatrix(t testing.TB, m, n, k int, seed int64) *binmat.Matrix {
	t.Helper()
	rng := basis.NewRand(seed)
	X, err := binmat.New(m, n)
	require.NoError(t, err)
	for r := 0; r < k; r++ {
		u, v := binmat.NewVec(m), binmat.NewVec(n)
		for i := 0; i < m; i++ {
			if rng.Float64() < 0.3 {
				u.Set(uint(i))
			}
		}
		for j := 0; j < n; j++ {
			if rng.Float64() < 0.3 {
				v.Set(uint(j))
			}
		}
		require.NoError(t, X.OrOuter(u, v))
	}

	return X
}
