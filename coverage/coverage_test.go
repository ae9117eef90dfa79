// SPDX-License-Identifier: MIT

package coverage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolmf/binmat"
	"github.com/katalvlaran/boolmf/coverage"
)

func TestScore_DiagonalScenario(t *testing.T) {
	t.Parallel()
	gt := binmat.MustFromDense([][]float64{{1, 0}, {0, 1}})
	pd := binmat.MustFromDense([][]float64{{1, 0}, {0, 0}})

	c, err := coverage.Confusion(gt, pd)
	require.NoError(t, err)
	assert.Equal(t, coverage.Counts{TP: 1, FP: 0, FN: 1, TN: 2}, c)

	s, err := coverage.Score(gt, pd, coverage.Weights{FP: 1, FN: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
}

func TestCover_SingleWeightScenario(t *testing.T) {
	t.Parallel()
	gt := binmat.MustFromDense([][]float64{{1, 1}, {0, 0}})
	pd := binmat.MustFromDense([][]float64{{1, 0}, {1, 0}})

	s, err := coverage.Cover(gt, pd, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s)
}

func TestScoreAxis_RowsColumnsGlobal(t *testing.T) {
	t.Parallel()
	gt := binmat.MustFromDense([][]float64{{1, 1, 0}, {0, 1, 1}})
	pd := binmat.MustFromDense([][]float64{{1, 0, 1}, {0, 1, 1}})
	w := coverage.Weights{FP: 0.5, FN: 0.25}

	rows, err := coverage.ScoreAxis(gt, pd, w, coverage.Rows)
	require.NoError(t, err)
	// row0: TP=1 FP=1 FN=1 ⇒ 1-0.5-0.25; row1: TP=2.
	assert.Equal(t, []float64{0.25, 2}, rows)

	cols, err := coverage.ScoreAxis(gt, pd, w, coverage.Columns)
	require.NoError(t, err)
	// col0: TP=1; col1: TP=1 FN=1; col2: TP=1 FP=1.
	assert.Equal(t, []float64{1, 0.75, 0.5}, cols)

	global, err := coverage.ScoreAxis(gt, pd, w, coverage.Global)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.25}, global)

	_, err = coverage.ScoreAxis(gt, pd, w, coverage.Axis(5))
	require.ErrorIs(t, err, binmat.ErrInvalidParameter)
}

func TestCoverAxis_MatchesPerEntryCounts(t *testing.T) {
	t.Parallel()
	gt := binmat.MustFromDense([][]float64{{1, 0}, {1, 1}})
	pd := binmat.MustFromDense([][]float64{{1, 1}, {0, 1}})

	rows, err := coverage.CoverAxis(gt, pd, 0.5, coverage.Rows)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1}, rows)

	cols, err := coverage.CoverAxis(gt, pd, 0.5, coverage.Columns)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5}, cols)
}

func TestShapeMismatch_IsFatal(t *testing.T) {
	t.Parallel()
	gt := binmat.MustFromDense([][]float64{{1, 0}})
	pd := binmat.MustFromDense([][]float64{{1, 0, 0}})

	_, err := coverage.Score(gt, pd, coverage.Symmetric(0.5))
	require.ErrorIs(t, err, binmat.ErrShapeMismatch)
	_, err = coverage.CoverAxis(gt, pd, 0.5, coverage.Rows)
	require.ErrorIs(t, err, binmat.ErrShapeMismatch)
	_, err = coverage.Evaluate(gt, pd)
	require.ErrorIs(t, err, binmat.ErrShapeMismatch)
}

// Adding a true-positive bit never lowers the score; adding a false-positive
// bit lowers it by exactly w.FP.
func TestScore_Monotonicity(t *testing.T) {
	t.Parallel()
	gt := binmat.MustFromDense([][]float64{
		{1, 1, 0, 0},
		{0, 1, 1, 0},
		{1, 0, 0, 1},
	})
	w := coverage.Weights{FP: 0.7, FN: 0.4}
	m, n := gt.Dims()

	pd, _ := binmat.New(m, n)
	base, err := coverage.Score(gt, pd, w)
	require.NoError(t, err)

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			cell, _ := gt.At(i, j)
			next := pd.Clone()
			require.NoError(t, next.Set(i, j, true))
			s, err := coverage.Score(gt, next, w)
			require.NoError(t, err)
			if cell {
				assert.GreaterOrEqual(t, s, base, "TP bit (%d,%d)", i, j)
			} else {
				assert.InDelta(t, base-w.FP, s, 1e-12, "FP bit (%d,%d)", i, j)
			}
		}
	}
}

func TestMetrics_ZeroDivisionGuard(t *testing.T) {
	t.Parallel()
	gt, _ := binmat.New(2, 2)
	pd, _ := binmat.New(2, 2)

	mt, err := coverage.Evaluate(gt, pd)
	require.NoError(t, err)
	assert.Equal(t, 4, mt.TN)
	assert.Equal(t, 0.0, mt.Precision)
	assert.Equal(t, 0.0, mt.F1)
	assert.Equal(t, 1.0, mt.Accuracy)

	rate, err := coverage.ErrorRate(gt, binmat.MustFromDense([][]float64{{1, 0}, {0, 0}}))
	require.NoError(t, err)
	assert.Equal(t, 0.25, rate)
}

func TestAxisOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, coverage.Rows, coverage.AxisOf(1))
	assert.Equal(t, coverage.Columns, coverage.AxisOf(0))
	assert.Equal(t, "rows", coverage.Rows.String())
	assert.Equal(t, coverage.Weights{FP: 0.25, FN: 0.75}, coverage.Symmetric(0.25))
}
