// SPDX-License-Identifier: MIT

package bmf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/boolmf/binmat"
	"github.com/katalvlaran/boolmf/bmf"
)

func TestFit_AlmostFullRankOne(t *testing.T) {
	t.Parallel()
	X := almostFull()
	res, err := bmf.Fit(X, bmf.NewConfig(bmf.WithRank(1)))
	require.NoError(t, err)

	assert.Equal(t, bmf.StatusDone, res.Status)
	assert.Equal(t, bmf.ReasonTargetRank, res.Reason)
	assert.Equal(t, 1, res.Factorization.Rank())
	assert.GreaterOrEqual(t, res.BestScore, 14.0)
	assert.Equal(t, 14.5, res.BestScore)
	assert.GreaterOrEqual(t, res.Metrics.TP+res.Metrics.TN, 15)
	assert.NotEmpty(t, res.Session)
}

func TestFit_TwoBlocksExact(t *testing.T) {
	t.Parallel()
	X := twoBlocks()
	sink := &bmf.MemorySink{}
	res, err := bmf.Fit(X, bmf.NewConfig(bmf.WithRank(2), bmf.WithSink(sink)))
	require.NoError(t, err)

	assert.Equal(t, bmf.StatusDone, res.Status)
	assert.True(t, binmat.Equal(X, res.Factorization.Predict()))
	assert.Equal(t, 8.0, res.BestScore)

	ranks := sink.Ranks()
	require.Len(t, ranks, 2)
	assert.Equal(t, []float64{2, 8}, []float64{ranks[0].Score, ranks[1].Score})
	for r, rec := range ranks {
		assert.Equal(t, r, rec.Rank)
		assert.Equal(t, "greedy", rec.Phase)
		assert.Equal(t, res.Session, rec.Session)
		assert.Equal(t, 2, rec.RowPop)
		assert.Equal(t, 2, rec.ColPop)
	}

	u0, v0, err := res.Factorization.ColumnPair(0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, binmat.VecIndices(u0))
	assert.Equal(t, []int{0, 1}, binmat.VecIndices(v0))
}

func TestFit_ScoresStrictlyIncrease(t *testing.T) {
	t.Parallel()
	X := plantedMatrix(t, 24, 18, 4, 5)
	sink := &bmf.MemorySink{}
	_, err := bmf.Fit(X, bmf.NewConfig(bmf.WithRank(6), bmf.WithEmptyBaseline(true), bmf.WithSink(sink)))
	require.NoError(t, err)

	ranks := sink.Ranks()
	require.NotEmpty(t, ranks)
	for i := 1; i < len(ranks); i++ {
		assert.Greater(t, ranks[i].Score, ranks[i-1].Score)
	}
}

func TestFit_EarlyStops(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		X      *binmat.Matrix
		cfg    bmf.Config
		rank   int
		reason bmf.StopReason
	}{
		{
			name:   "pool exhausted",
			X:      binmat.MustFromDense([][]float64{{1, 1, 0}, {0, 0, 0}}),
			cfg:    bmf.NewConfig(bmf.WithRank(3), bmf.WithInitMethod(bmf.InitRandomRows)),
			rank:   1,
			reason: bmf.ReasonEmptyPool,
		},
		{
			name:   "no improving candidate",
			X:      binmat.MustFromDense([][]float64{{1, 1}, {1, 1}}),
			cfg:    bmf.NewConfig(bmf.WithRank(2)),
			rank:   1,
			reason: bmf.ReasonNoImprovement,
		},
		{
			name:   "tolerance",
			X:      almostFull(),
			cfg:    bmf.NewConfig(bmf.WithRank(5), bmf.WithTol(0.1)),
			rank:   1,
			reason: bmf.ReasonTolerance,
		},
		{
			name:   "all-zero input",
			X:      binmat.MustFromDense([][]float64{{0, 0}, {0, 0}}),
			cfg:    bmf.NewConfig(bmf.WithRank(2)),
			rank:   0,
			reason: bmf.ReasonEmptyPool,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res, err := bmf.Fit(tc.X, tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, bmf.StatusEarlyStopped, res.Status)
			assert.Equal(t, tc.reason, res.Reason)
			assert.Equal(t, tc.rank, res.Factorization.Rank())
		})
	}
}

func TestFit_FirstRankMustBeatZero(t *testing.T) {
	t.Parallel()
	X := binmat.MustFromDense([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}})

	// Best single pattern: TP=1, FN=2, score -1.
	res, err := bmf.Fit(X, bmf.NewConfig(bmf.WithRank(1), bmf.WithWeights(1, 1)))
	require.NoError(t, err)
	assert.Equal(t, bmf.StatusEarlyStopped, res.Status)
	assert.Equal(t, bmf.ReasonNoImprovement, res.Reason)
	assert.Equal(t, 0, res.Factorization.Rank())

	// Against the empty prediction (-3) the same pattern is an improvement.
	res, err = bmf.Fit(X, bmf.NewConfig(bmf.WithRank(1), bmf.WithWeights(1, 1), bmf.WithEmptyBaseline(true)))
	require.NoError(t, err)
	assert.Equal(t, bmf.StatusDone, res.Status)
	assert.Equal(t, bmf.ReasonTargetRank, res.Reason)
	assert.Equal(t, 1, res.Factorization.Rank())
	assert.Equal(t, -1.0, res.BestScore)
}

func TestFit_ToleranceIsStrict(t *testing.T) {
	t.Parallel()
	// Rank one leaves a single false positive: error rate exactly 1/16.
	res, err := bmf.Fit(almostFull(), bmf.NewConfig(bmf.WithRank(5), bmf.WithTol(1.0/16)))
	require.NoError(t, err)
	assert.NotEqual(t, bmf.ReasonTolerance, res.Reason)
}

func TestFit_ZeroRankRunsUntilStopAndCompacts(t *testing.T) {
	t.Parallel()
	X := twoBlocks()
	res, err := bmf.Fit(X, bmf.NewConfig(bmf.WithRank(0)))
	require.NoError(t, err)

	assert.Equal(t, bmf.StatusEarlyStopped, res.Status)
	assert.Equal(t, bmf.ReasonNoImprovement, res.Reason)
	assert.Equal(t, 2, res.Factorization.Rank())
	assert.Equal(t, 2, res.Factorization.Capacity())
	assert.True(t, binmat.Equal(X, res.Factorization.Predict()))
}

func TestSession_StateMachine(t *testing.T) {
	t.Parallel()
	s, err := bmf.NewSession(twoBlocks(), bmf.NewConfig(bmf.WithRank(1)))
	require.NoError(t, err)
	assert.Equal(t, bmf.StateReady, s.State())
	assert.Equal(t, 4, s.Pool().Len())

	require.NoError(t, s.Step())
	assert.Equal(t, bmf.StateSearching, s.State())
	assert.Equal(t, 0.0, s.BestScore())

	require.NoError(t, s.Step())
	assert.Equal(t, bmf.StateCommitted, s.State())
	assert.Equal(t, 2.0, s.BestScore())
	assert.Equal(t, 3, s.Pool().Len())
	assert.Equal(t, 1, s.Factorization().Rank())

	require.NoError(t, s.Step())
	assert.Equal(t, bmf.StateDone, s.State())
	assert.True(t, s.State().Terminal())
	assert.Equal(t, bmf.ReasonTargetRank, s.Reason())

	// Terminal sessions ignore further steps.
	require.NoError(t, s.Run())
	assert.Equal(t, bmf.StateDone, s.State())
	assert.Equal(t, "committed", bmf.StateCommitted.String())
}

func TestFit_InvalidInputs(t *testing.T) {
	t.Parallel()
	_, err := bmf.Fit(nil, bmf.DefaultConfig())
	require.ErrorIs(t, err, binmat.ErrNilMatrix)

	_, err = bmf.Fit(twoBlocks(), bmf.NewConfig(bmf.WithRank(-1)))
	require.ErrorIs(t, err, bmf.ErrInvalidParameter)

	_, err = bmf.NewSession(twoBlocks(), bmf.NewConfig(bmf.WithTau(2)))
	require.ErrorIs(t, err, bmf.ErrInvalidParameter)
}

func TestFit_WorkersDoNotChangeResult(t *testing.T) {
	t.Parallel()
	X := plantedMatrix(t, 30, 20, 4, 9)
	for _, algo := range []bmf.Algo{bmf.GreedyAsso, bmf.ExhaustiveRowRefine} {
		seq, err := bmf.Fit(X, bmf.NewConfig(bmf.WithAlgo(algo), bmf.WithRank(4), bmf.WithWorkers(1)))
		require.NoError(t, err)
		par, err := bmf.Fit(X, bmf.NewConfig(bmf.WithAlgo(algo), bmf.WithRank(4), bmf.WithWorkers(8)))
		require.NoError(t, err)

		assert.True(t, binmat.Equal(seq.Factorization.U, par.Factorization.U), "algo=%v", algo)
		assert.True(t, binmat.Equal(seq.Factorization.V, par.Factorization.V), "algo=%v", algo)
		assert.Equal(t, seq.BestScore, par.BestScore)
	}
}

func TestFitTransposed_SwapsFactors(t *testing.T) {
	t.Parallel()
	X := plantedMatrix(t, 14, 22, 3, 17)
	cfg := bmf.NewConfig(bmf.WithRank(3))

	tr, err := bmf.FitTransposed(X, cfg)
	require.NoError(t, err)
	direct, err := bmf.Fit(X.T(), cfg)
	require.NoError(t, err)

	m, n := tr.Factorization.Dims()
	assert.Equal(t, 14, m)
	assert.Equal(t, 22, n)
	assert.True(t, binmat.Equal(tr.Factorization.U, direct.Factorization.V))
	assert.True(t, binmat.Equal(tr.Factorization.V, direct.Factorization.U))
	assert.True(t, binmat.Equal(tr.Factorization.Predict(), direct.Factorization.Predict().T()))

	_, err = bmf.FitTransposed(nil, cfg)
	require.ErrorIs(t, err, binmat.ErrNilMatrix)
}
