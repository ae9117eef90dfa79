// SPDX-License-Identifier: MIT

// Package bmf - greedy rank selector (Asso).
//
// Each rank evaluates every remaining candidate as the fixed column-side
// vector (basisDim=1), derives its best row-side complement against the
// current prediction, and commits the highest-scoring pair if it strictly
// improves on the running best.
//
// Baseline: the first rank must score strictly above 0. With
// Config.EmptyBaseline it competes against the empty prediction instead,
// −w_fn·|X|, which lets sparse data commit a net-negative first pattern.
//
// Determinism:
//   - Candidates may be scored in parallel; the winner is the first maximum
//     in pool order, independent of scheduling.

package bmf

import (
	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/boolmf/coverage"
)

const phaseGreedy = "greedy"

// Step performs one state-machine transition.
func (s *FittingSession) Step() error {
	switch s.state {
	case StateReady:
		s.best = 0
		if s.cfg.EmptyBaseline {
			sOld, err := coverage.ScoreAxis(s.X, s.pred, s.w, coverage.Rows)
			if err != nil {
				return bmfErrorf("Step", err)
			}
			s.best = floats.Sum(sOld)
		}
		s.state = StateSearching

	case StateSearching:
		return s.search()

	case StateCommitted:
		s.afterCommit()
	}

	return nil
}

// search scores all candidates and commits the winner or stops early.
func (s *FittingSession) search() error {
	if s.pool.Len() == 0 {
		s.stop(StateEarlyStopped, ReasonEmptyPool)
		return nil
	}

	sOld, err := coverage.ScoreAxis(s.X, s.pred, s.w, coverage.Rows)
	if err != nil {
		return bmfErrorf("search", err)
	}
	scores := make([]float64, s.pool.Len())
	vecs := make([]*bitset.BitSet, s.pool.Len())
	err = parallelFor(s.pool.Len(), s.cfg.Workers, func(c int) error {
		var e error
		scores[c], vecs[c], e = MatchVector(s.X, s.pred, sOld, s.pool.At(c), 1, s.w)
		return e
	})
	if err != nil {
		return err
	}

	win := floats.MaxIdx(scores)
	if !(scores[win] > s.best) {
		s.stop(StateEarlyStopped, ReasonNoImprovement)
		return nil
	}

	u, v := vecs[win], s.pool.At(win).Clone()
	r := s.fact.Rank()
	if err = s.fact.Commit(u, v); err != nil {
		return err
	}
	if err = s.pred.OrOuter(u, v); err != nil {
		return bmfErrorf("search", err)
	}
	if err = s.pool.Remove(win); err != nil {
		return err
	}
	s.best = scores[win]
	s.state = StateCommitted

	rec, err := s.rankRecord(phaseGreedy, r, s.best)
	if err != nil {
		return err
	}
	s.sink.Rank(rec)

	return nil
}

// afterCommit decides between Done, an early stop and the next search.
func (s *FittingSession) afterCommit() {
	if s.target > 0 && s.fact.Rank() >= s.target {
		s.stop(StateDone, ReasonTargetRank)
		return
	}
	if s.cfg.Tol > 0 {
		if rate, err := coverage.ErrorRate(s.X, s.pred); err == nil && rate < s.cfg.Tol {
			s.stop(StateEarlyStopped, ReasonTolerance)
			return
		}
	}
	if s.fact.Rank() >= s.fact.Capacity() {
		// no target rank and every candidate has been committed
		s.stop(StateEarlyStopped, ReasonEmptyPool)
		return
	}
	s.state = StateSearching
}
