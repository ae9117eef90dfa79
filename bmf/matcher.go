// SPDX-License-Identifier: MIT

// Package bmf - Vector Matcher.
//
// Purpose:
//   - Given a fixed basis vector on one side of a rank-1 pattern, derive the
//     complementary vector entry by entry: an entry is switched on exactly
//     where adding the all-ones trial pattern strictly improves that entry's
//     local coverage score.
//
// Orientation (basisDim):
//   - basisDim=1: basis has length n (one bit per column), the derived vector
//     has length m and is scored per row (coverage.Rows).
//   - basisDim=0: basis has length m (one bit per row), the derived vector
//     has length n and is scored per column (coverage.Columns).
//
// Determinism & Performance:
//   - Pure; inputs are never mutated. One clone of old per call, O(m*n/64).

package bmf

import (
	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/boolmf/binmat"
	"github.com/katalvlaran/boolmf/coverage"
)

const (
	opMatchVector      = "MatchVector"
	opMatchVectorCover = "MatchVectorCover"
)

// Match is the result of the cover-form matcher.
type Match struct {
	// Score is Σ s_old over unflipped entries plus Σ s_new over flipped ones.
	Score float64

	// Exclusive is twice the cover score restricted to the cells the new
	// pattern adds on top of old.
	Exclusive float64

	// Vector is the derived complementary vector.
	Vector *bitset.BitSet
}

// orient returns the (row, column) vector pair of the pattern formed by a
// basis vector on side basisDim and its complement vec.
func orient(basis, vec *bitset.BitSet, basisDim int) (u, v *bitset.BitSet) {
	if basisDim == 1 {
		return vec, basis
	}

	return basis, vec
}

// matchInputs checks shapes and returns the complementary length.
func matchInputs(gt, old *binmat.Matrix, sOld []float64, basis *bitset.BitSet, basisDim int) (int, error) {
	if err := binmat.ValidateSameShape(gt, old); err != nil {
		return 0, err
	}
	if err := binmat.ValidateDim(basisDim); err != nil {
		return 0, err
	}
	m, n := gt.Dims()
	basisLen, compLen := n, m
	if basisDim == 0 {
		basisLen, compLen = m, n
	}
	if err := binmat.ValidateVecLen(basis, basisLen); err != nil {
		return 0, err
	}
	if err := binmat.ValidateFloatLen(sOld, compLen); err != nil {
		return 0, err
	}

	return compLen, nil
}

// matchCore runs the per-entry decision with the given count scorer.
// It returns the combined score and the derived vector.
func matchCore(gt, old *binmat.Matrix, sOld []float64, basis *bitset.BitSet, basisDim int,
	score func(coverage.Counts) float64) (float64, *bitset.BitSet, error) {
	compLen, err := matchInputs(gt, old, sOld, basis, basisDim)
	if err != nil {
		return 0, nil, err
	}
	vec := binmat.NewVec(compLen)
	if basis.None() {
		return floats.Sum(sOld), vec, nil
	}

	trial := old.Clone()
	u, v := orient(basis, binmat.Ones(compLen), basisDim)
	if err = trial.OrOuter(u, v); err != nil {
		return 0, nil, err
	}
	counts, err := coverage.ConfusionAxis(gt, trial, coverage.AxisOf(basisDim))
	if err != nil {
		return 0, nil, err
	}

	var total, sNew float64
	for k, c := range counts {
		sNew = score(c)
		if sNew > sOld[k] {
			vec.Set(uint(k))
			total += sNew
		} else {
			total += sOld[k]
		}
	}

	return total, vec, nil
}

// MatchVector is the dual-weight matcher used by the Asso family.
//
// sOld must be the dual-weight score of old along coverage.AxisOf(basisDim).
//
// Errors: ErrShapeMismatch on any dimension disagreement; ErrInvalidParameter
// for a basisDim outside {0,1}.
// Complexity: O(m*n/64) for basisDim=1, O(m*n/64 + nnz) for basisDim=0.
func MatchVector(gt, old *binmat.Matrix, sOld []float64, basis *bitset.BitSet, basisDim int,
	w coverage.Weights) (float64, *bitset.BitSet, error) {
	score, vec, err := matchCore(gt, old, sOld, basis, basisDim, func(c coverage.Counts) float64 {
		return c.Score(w)
	})
	if err != nil {
		return 0, nil, bmfErrorf(opMatchVector, err)
	}

	return score, vec, nil
}

// MatchVectorCover is the single-weight matcher of the lazy-update engine.
// Besides the entry-wise decision it reports the exclusive score: twice the
// cover score of the region the derived pattern adds outside old.
//
// sOld must be the cover score of old along coverage.AxisOf(basisDim).
func MatchVectorCover(gt, old *binmat.Matrix, sOld []float64, basis *bitset.BitSet, basisDim int,
	w float64) (Match, error) {
	score, vec, err := matchCore(gt, old, sOld, basis, basisDim, func(c coverage.Counts) float64 {
		return c.Cover(w)
	})
	if err != nil {
		return Match{}, bmfErrorf(opMatchVectorCover, err)
	}
	u, v := orient(basis, vec, basisDim)
	ex := exclusiveCounts(gt, old, u, v)

	return Match{Score: score, Exclusive: 2 * ex.Cover(w), Vector: vec}, nil
}

// matchWith dispatches on the objective; the lazy-update engine uses it so
// both conventions share one code path.
func matchWith(obj Objective, gt, old *binmat.Matrix, basis *bitset.BitSet, basisDim int, w float64) (Match, error) {
	axis := coverage.AxisOf(basisDim)
	if obj == ObjectiveCover {
		sOld, err := coverage.CoverAxis(gt, old, w, axis)
		if err != nil {
			return Match{}, err
		}

		return MatchVectorCover(gt, old, sOld, basis, basisDim, w)
	}

	ws := coverage.Symmetric(w)
	sOld, err := coverage.ScoreAxis(gt, old, ws, axis)
	if err != nil {
		return Match{}, err
	}
	score, vec, err := MatchVector(gt, old, sOld, basis, basisDim, ws)
	if err != nil {
		return Match{}, err
	}
	u, v := orient(basis, vec, basisDim)
	ex := exclusiveCounts(gt, old, u, v)

	return Match{Score: score, Exclusive: 2 * ex.Score(ws), Vector: vec}, nil
}

// exclusiveCounts tallies gt over the cells of u⊗v that old leaves unset.
// FN is left at zero; only TP and FP are meaningful for a region tally.
func exclusiveCounts(gt, old *binmat.Matrix, u, v *bitset.BitSet) coverage.Counts {
	var c coverage.Counts
	var region *bitset.BitSet
	for i, ok := u.NextSet(0); ok; i, ok = u.NextSet(i + 1) {
		region = v.Difference(old.RowBits(int(i)))
		tp := int(gt.RowBits(int(i)).IntersectionCardinality(region))
		c.TP += tp
		c.FP += int(region.Count()) - tp
	}

	return c
}
