// SPDX-License-Identifier: MIT

// Package bmf - record sinks.
//
// Every committed rank and every lazy-update pass produces one structured
// record. Sinks decide where records go: nowhere (NopSink), memory
// (MemorySink, for tests) or a zap logger (ZapSink).

package bmf

import (
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/boolmf/coverage"
)

// RankRecord describes one committed rank of the greedy selector or one
// accepted refinement.
type RankRecord struct {
	Session string
	Algo    Algo
	Phase   string
	Rank    int
	Score   float64
	Metrics coverage.Metrics

	// RowPop and ColPop are the populations of the committed U and V columns.
	RowPop, ColPop int
}

// IterationRecord describes one pass of the lazy-update engine or one sweep
// step of a refiner.
type IterationRecord struct {
	Session   string
	Algo      Algo
	Phase     string
	Iteration int
	Scores    []float64
	Weights   []float64
	Converged []int
	Removed   []int
	Merged    [][2]int
	ErrorRate float64
}

// Sink receives fitting records. Implementations must be safe to call from
// the fitting goroutine; records are never emitted concurrently.
type Sink interface {
	Rank(RankRecord)
	Iteration(IterationRecord)
}

// NopSink discards all records.
type NopSink struct{}

// Rank implements Sink.
func (NopSink) Rank(RankRecord) {}

// Iteration implements Sink.
func (NopSink) Iteration(IterationRecord) {}

// MemorySink keeps every record in memory.
type MemorySink struct {
	mu         sync.Mutex
	ranks      []RankRecord
	iterations []IterationRecord
}

// Rank implements Sink.
func (s *MemorySink) Rank(r RankRecord) {
	s.mu.Lock()
	s.ranks = append(s.ranks, r)
	s.mu.Unlock()
}

// Iteration implements Sink.
func (s *MemorySink) Iteration(r IterationRecord) {
	s.mu.Lock()
	s.iterations = append(s.iterations, r)
	s.mu.Unlock()
}

// Ranks returns a copy of the rank records seen so far.
func (s *MemorySink) Ranks() []RankRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]RankRecord(nil), s.ranks...)
}

// Iterations returns a copy of the iteration records seen so far.
func (s *MemorySink) Iterations() []IterationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]IterationRecord(nil), s.iterations...)
}

// ZapSink writes records as structured zap entries at info level.
type ZapSink struct {
	log *zap.Logger
}

// NewZapSink wraps log; a nil logger falls back to zap.NewNop.
func NewZapSink(log *zap.Logger) *ZapSink {
	if log == nil {
		log = zap.NewNop()
	}

	return &ZapSink{log: log}
}

// Rank implements Sink.
func (s *ZapSink) Rank(r RankRecord) {
	s.log.Info("committed rank",
		zap.String("session", r.Session),
		zap.Stringer("algo", r.Algo),
		zap.String("phase", r.Phase),
		zap.Int("rank", r.Rank),
		zap.Float64("score", r.Score),
		zap.Int("tp", r.Metrics.TP),
		zap.Int("fp", r.Metrics.FP),
		zap.Int("fn", r.Metrics.FN),
		zap.Float64("tpr", r.Metrics.TPR),
		zap.Float64("fpr", r.Metrics.FPR),
		zap.Float64("fnr", r.Metrics.FNR),
		zap.Float64("accuracy", r.Metrics.Accuracy),
		zap.Float64("precision", r.Metrics.Precision),
		zap.Float64("recall", r.Metrics.Recall),
		zap.Float64("f1", r.Metrics.F1),
		zap.Int("row_pop", r.RowPop),
		zap.Int("col_pop", r.ColPop),
	)
}

// Iteration implements Sink.
func (s *ZapSink) Iteration(r IterationRecord) {
	s.log.Info("iteration",
		zap.String("session", r.Session),
		zap.Stringer("algo", r.Algo),
		zap.String("phase", r.Phase),
		zap.Int("iteration", r.Iteration),
		zap.Float64s("scores", r.Scores),
		zap.Float64s("weights", r.Weights),
		zap.Ints("converged", r.Converged),
		zap.Ints("removed", r.Removed),
		zap.Int("merged", len(r.Merged)),
		zap.Float64("error_rate", r.ErrorRate),
	)
}
