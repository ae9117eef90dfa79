// SPDX-License-Identifier: MIT

package bmf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/boolmf/bmf"
)

func TestZapSink_RankFields(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.InfoLevel)
	sink := bmf.NewZapSink(zap.New(core))

	res, err := bmf.Fit(almostFull(), bmf.NewConfig(bmf.WithRank(1), bmf.WithSink(sink)))
	require.NoError(t, err)

	entries := logs.FilterMessage("committed rank").AllUntimed()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, res.Session, fields["session"])
	assert.Equal(t, "asso", fields["algo"])
	assert.Equal(t, "greedy", fields["phase"])
	assert.Equal(t, int64(0), fields["rank"])
	assert.Equal(t, 14.5, fields["score"])
	assert.Equal(t, int64(15), fields["tp"])
	assert.Equal(t, int64(1), fields["fp"])
	assert.Equal(t, int64(4), fields["row_pop"])
	assert.Equal(t, int64(4), fields["col_pop"])
}

func TestZapSink_IterationEntries(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.InfoLevel)
	_, err := bmf.Fit(twoBlocks(), bmf.NewConfig(
		bmf.WithAlgo(bmf.MultiWeightLazyUpdate),
		bmf.WithMaxIter(3),
		bmf.WithSink(bmf.NewZapSink(zap.New(core))),
	))
	require.NoError(t, err)

	entries := logs.FilterMessage("iteration").AllUntimed()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, int64(i+1), e.ContextMap()["iteration"])
		assert.Equal(t, "lazy-update", e.ContextMap()["phase"])
	}
}

func TestZapSink_NilLoggerAndTestLogger(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		bmf.NewZapSink(nil).Rank(bmf.RankRecord{})
	})

	_, err := bmf.Fit(twoBlocks(), bmf.NewConfig(
		bmf.WithRank(2),
		bmf.WithSink(bmf.NewZapSink(zaptest.NewLogger(t))),
	))
	require.NoError(t, err)
}

func TestMemorySink_ReturnsCopies(t *testing.T) {
	t.Parallel()
	sink := &bmf.MemorySink{}
	sink.Rank(bmf.RankRecord{Rank: 3})
	sink.Iteration(bmf.IterationRecord{Iteration: 1})

	ranks := sink.Ranks()
	ranks[0].Rank = 9
	assert.Equal(t, 3, sink.Ranks()[0].Rank)
	assert.Len(t, sink.Iterations(), 1)

	var nop bmf.NopSink
	assert.NotPanics(t, func() {
		nop.Rank(bmf.RankRecord{})
		nop.Iteration(bmf.IterationRecord{})
	})
}
