// SPDX-License-Identifier: MIT

package binmat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/boolmf/binmat"
)

func TestElementwise_OrAndAndNot(t *testing.T) {
	t.Parallel()
	a := binmat.MustFromDense([][]float64{{1, 1, 0}, {0, 1, 0}})
	b := binmat.MustFromDense([][]float64{{0, 1, 1}, {0, 0, 0}})

	or, err := binmat.Or(a, b)
	require.NoError(t, err)
	assert.Equal(t, "[1, 1, 1]\n[0, 1, 0]\n", or.String())

	and, err := binmat.And(a, b)
	require.NoError(t, err)
	assert.Equal(t, "[0, 1, 0]\n[0, 0, 0]\n", and.String())

	diff, err := binmat.AndNot(a, b)
	require.NoError(t, err)
	assert.Equal(t, "[1, 0, 0]\n[0, 1, 0]\n", diff.String())

	_, err = binmat.Or(a, binmat.MustFromDense([][]float64{{1}}))
	require.ErrorIs(t, err, binmat.ErrShapeMismatch)
	_, err = binmat.And(a, nil)
	require.ErrorIs(t, err, binmat.ErrNilMatrix)
}

func TestOuterAndBoolProduct(t *testing.T) {
	t.Parallel()
	// U = [[1,0],[1,1],[0,1]], V = [[1,0],[0,1]] ⇒ U∘Vᵀ = U.
	U := binmat.MustFromDense([][]float64{{1, 0}, {1, 1}, {0, 1}})
	V := binmat.MustFromDense([][]float64{{1, 0}, {0, 1}})
	pd, err := binmat.BoolProduct(U, V)
	require.NoError(t, err)
	assert.True(t, binmat.Equal(U, pd))

	u, _ := binmat.VecFromIndices(3, 0, 2)
	v, _ := binmat.VecFromIndices(2, 1)
	out, err := binmat.Outer(u, v, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, "[0, 1]\n[0, 0]\n[0, 1]\n", out.String())

	require.ErrorIs(t, out.OrOuter(v, v), binmat.ErrShapeMismatch)

	_, err = binmat.BoolProduct(U, binmat.MustFromDense([][]float64{{1, 0, 1}}))
	require.ErrorIs(t, err, binmat.ErrShapeMismatch)
}

func TestBoolProduct_IsOrNotSum(t *testing.T) {
	t.Parallel()
	// Two ranks covering the same cell must still yield 1.
	U := binmat.MustFromDense([][]float64{{1, 1}})
	V := binmat.MustFromDense([][]float64{{1, 1}})
	pd, err := binmat.BoolProduct(U, V)
	require.NoError(t, err)
	assert.Equal(t, 1, pd.Count())
}

func TestTransposeAndSums(t *testing.T) {
	t.Parallel()
	m := binmat.MustFromDense([][]float64{{1, 0, 1}, {1, 1, 1}})
	assert.Equal(t, "[1, 1]\n[0, 1]\n[1, 1]\n", m.T().String())
	assert.Equal(t, []int{2, 3}, m.RowSums())
	assert.Equal(t, []int{2, 1, 2}, m.ColSums())
	assert.Equal(t, 5, m.Count())
	assert.False(t, m.IsZero())
	assert.True(t, binmat.ZerosLike(m).IsZero())

	rs, err := m.Sums(1)
	require.NoError(t, err)
	assert.Equal(t, m.RowSums(), rs)
	cs, err := m.Sums(0)
	require.NoError(t, err)
	assert.Equal(t, m.ColSums(), cs)
	_, err = m.Sums(2)
	require.ErrorIs(t, err, binmat.ErrInvalidParameter)
}

func TestConvert_FromDenseBinarizeToDense(t *testing.T) {
	t.Parallel()
	_, err := binmat.FromDense([][]float64{{1, 2}})
	require.ErrorIs(t, err, binmat.ErrNonBinary)
	_, err = binmat.FromDense([][]float64{{1, 0}, {1}})
	require.ErrorIs(t, err, binmat.ErrRagged)
	_, err = binmat.FromDense(nil)
	require.ErrorIs(t, err, binmat.ErrInvalidDimensions)

	a := mat.NewDense(2, 2, []float64{0.49, 0.5, 1, 0})
	b, err := binmat.Binarize(a, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "[0, 1]\n[1, 0]\n", b.String())
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{0, 1, 1, 0}), b.ToDense()))
}
