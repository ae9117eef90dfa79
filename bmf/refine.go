// SPDX-License-Identifier: MIT

// Package bmf - iterative refiners run on a populated factorization.
//
//   - refineColumns (AssoIter): sweep ranks round-robin, re-derive U[:,r]
//     against the prediction of the other ranks, keep it only when the
//     unweighted error strictly drops; stop after k consecutive rejections.
//   - refineRows (AssoOpt): for each row of U independently, pick the exact
//     best of all 2^k bit patterns given V.

package bmf

import (
	"fmt"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/boolmf/binmat"
	"github.com/katalvlaran/boolmf/coverage"
)

const (
	phaseColumnRefine = "column-refine"
	phaseRowRefine    = "row-refine"
)

// errorCount returns FP+FN of pd against X.
func errorCount(X, pd *binmat.Matrix) (int, error) {
	c, err := coverage.Confusion(X, pd)
	if err != nil {
		return 0, err
	}

	return c.FP + c.FN, nil
}

// refineColumns improves U column by column until a full sweep of k ranks
// brings no strict error decrease. It returns the number of accepted updates.
func (s *FittingSession) refineColumns() (int, error) {
	k := s.fact.Rank()
	if k == 0 {
		return 0, nil
	}
	cur, err := errorCount(s.X, s.pred)
	if err != nil {
		return 0, bmfErrorf("refineColumns", err)
	}

	accepted, stagnation, step := 0, 0, 0
	for r := 0; stagnation < k; r = (r + 1) % k {
		step++
		rest := s.fact.PredictExcept(r)
		sOld, err := coverage.ScoreAxis(s.X, rest, s.w, coverage.Rows)
		if err != nil {
			return accepted, bmfErrorf("refineColumns", err)
		}
		_, v, _ := s.fact.ColumnPair(r) // r < k <= capacity
		score, u, err := MatchVector(s.X, rest, sOld, v, 1, s.w)
		if err != nil {
			return accepted, err
		}
		_ = rest.OrOuter(u, v) // u has length m, v length n
		next, _ := errorCount(s.X, rest)
		if next >= cur {
			stagnation++
			continue
		}

		if err = s.fact.SetPair(r, u, v); err != nil {
			return accepted, err
		}
		s.pred, cur = rest, next
		stagnation = 0
		accepted++
		if score > s.best {
			s.best = score
		}
		rec, err := s.rankRecord(phaseColumnRefine, r, score)
		if err != nil {
			return accepted, err
		}
		s.sink.Rank(rec)
	}

	rate, _ := coverage.ErrorRate(s.X, s.pred)
	s.sink.Iteration(IterationRecord{
		Session:   s.id,
		Algo:      s.cfg.Algo,
		Phase:     phaseColumnRefine,
		Iteration: step,
		ErrorRate: rate,
	})

	return accepted, nil
}

// rowPatternTable returns, for every p in [0,2^k), the OR of vcols[r] over
// the set bits r of p. Bit r of p selects rank r.
func rowPatternTable(vcols []*bitset.BitSet, n int) []*bitset.BitSet {
	k := len(vcols)
	table := make([]*bitset.BitSet, 1<<k)
	table[0] = binmat.NewVec(n)
	for p := 1; p < len(table); p++ {
		r := bits.TrailingZeros(uint(p))
		table[p] = table[p&(p-1)].Union(vcols[r])
	}

	return table
}

// scoreRow scores every pattern of table against one ground-truth row.
func scoreRow(gtRow *bitset.BitSet, table []*bitset.BitSet, n int, w coverage.Weights) []float64 {
	scores := make([]float64, len(table))
	for p, pat := range table {
		scores[p] = coverage.VecCounts(gtRow, pat, n).Score(w)
	}

	return scores
}

// EnumerateRowPatterns scores all 2^k choices of one U row against gtRow,
// where vcols are the k columns of V (each of length n). Entry p of the
// result is the dual-weight score of the pattern whose bit r is rank r.
//
// Errors: ErrShapeMismatch on vector lengths; ErrInvalidParameter when k is
// zero or above the largest accepted Config.MaxExhaustiveRank.
// Complexity: O(2^k · n/64).
func EnumerateRowPatterns(gtRow *bitset.BitSet, vcols []*bitset.BitSet, n int, w coverage.Weights) ([]float64, error) {
	if len(vcols) == 0 || len(vcols) > maxExhaustiveRankLimit {
		return nil, fmt.Errorf("bmf.EnumerateRowPatterns: k=%d not in [1,%d]: %w",
			len(vcols), maxExhaustiveRankLimit, ErrInvalidParameter)
	}
	if err := binmat.ValidateVecLen(gtRow, n); err != nil {
		return nil, bmfErrorf("EnumerateRowPatterns", err)
	}
	for _, v := range vcols {
		if err := binmat.ValidateVecLen(v, n); err != nil {
			return nil, bmfErrorf("EnumerateRowPatterns", err)
		}
	}

	return scoreRow(gtRow, rowPatternTable(vcols, n), n, w), nil
}

// refineRows replaces every row of U with its exact best pattern given V.
// Rows are independent and scored on the worker pool.
func (s *FittingSession) refineRows() error {
	k := s.fact.Rank()
	if k == 0 {
		return nil
	}
	if k > s.cfg.MaxExhaustiveRank {
		return fmt.Errorf("bmf.refineRows: rank %d exceeds MaxExhaustiveRank=%d: %w",
			k, s.cfg.MaxExhaustiveRank, ErrInvalidParameter)
	}

	m, n := s.X.Dims()
	vcols := make([]*bitset.BitSet, k)
	for r := range vcols {
		vcols[r], _ = s.fact.V.Col(r)
	}
	table := rowPatternTable(vcols, n)

	chosen := make([]int, m)
	err := parallelFor(m, s.cfg.Workers, func(i int) error {
		chosen[i] = floats.MaxIdx(scoreRow(s.X.RowBits(i), table, n, s.w))
		return nil
	})
	if err != nil {
		return err
	}

	capacity := s.fact.Capacity()
	for i, p := range chosen {
		row := binmat.NewVec(capacity)
		for r := 0; r < k; r++ {
			if p&(1<<r) != 0 {
				row.Set(uint(r))
			}
		}
		if err = s.fact.U.SetRow(i, row); err != nil {
			return bmfErrorf("refineRows", err)
		}
	}
	s.pred = s.fact.Predict()

	score, _ := coverage.Score(s.X, s.pred, s.w)
	s.best = score
	for r := 0; r < k; r++ {
		rec, err := s.rankRecord(phaseRowRefine, r, score)
		if err != nil {
			return err
		}
		s.sink.Rank(rec)
	}

	return nil
}
