// SPDX-License-Identifier: MIT

package bmf

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/samber/lo"

	"github.com/katalvlaran/boolmf/binmat"
)

// DescriptionLength compares three encodings of the region left free by all
// patterns outside a group of slots. Lower is cheaper.
type DescriptionLength struct {
	// None stores every 1 of X in the region as an explicit bit.
	None int

	// Pattern stores the group's vectors as they are (sum of populations)
	// plus the correction bits (FN and FP) of their union in the region.
	Pattern int

	// Merged stores the OR of the group's row vectors and the OR of its
	// column vectors as one pattern, plus its correction bits in the region.
	Merged int
}

// ExclusiveDescriptionLength evaluates the slots listed in ids against X.
// rows[s] (length m) and cols[s] (length n) are the vector pair of slot s.
// It is pure: nothing passed in is modified.
//
// Errors: ErrShapeMismatch on vector lengths or len(rows) != len(cols);
// binmat.ErrOutOfRange for an id outside the slots; ErrInvalidParameter for
// an empty id list.
// Complexity: O(slots · m · n/64).
func ExclusiveDescriptionLength(ids []int, rows, cols []*bitset.BitSet, X *binmat.Matrix) (DescriptionLength, error) {
	if err := validateSlots(rows, cols, X); err != nil {
		return DescriptionLength{}, bmfErrorf("ExclusiveDescriptionLength", err)
	}
	if len(ids) == 0 {
		return DescriptionLength{}, fmt.Errorf("bmf.ExclusiveDescriptionLength: empty group: %w", ErrInvalidParameter)
	}
	for _, id := range ids {
		if id < 0 || id >= len(rows) {
			return DescriptionLength{}, fmt.Errorf("bmf.ExclusiveDescriptionLength: id %d: %w", id, binmat.ErrOutOfRange)
		}
	}

	m, n := X.Dims()
	others := lo.Filter(lo.Range(len(rows)), func(s, _ int) bool { return !lo.Contains(ids, s) })
	covered := unionOf(others, rows, cols, m, n)
	group := unionOf(ids, rows, cols, m, n)

	mergedRow, mergedCol := binmat.NewVec(m), binmat.NewVec(n)
	var dl DescriptionLength
	for _, id := range ids {
		dl.Pattern += binmat.Pop(rows[id]) + binmat.Pop(cols[id])
		mergedRow.InPlaceUnion(rows[id])
		mergedCol.InPlaceUnion(cols[id])
	}
	dl.Merged = binmat.Pop(mergedRow) + binmat.Pop(mergedCol)

	empty := binmat.NewVec(n)
	var region, x *bitset.BitSet
	for i := 0; i < m; i++ {
		region = binmat.Ones(n).Difference(covered.RowBits(i))
		x = X.RowBits(i).Intersection(region)
		dl.None += binmat.Pop(x)
		dl.Pattern += correction(x, group.RowBits(i).Intersection(region))
		if mergedRow.Test(uint(i)) {
			dl.Merged += correction(x, mergedCol.Intersection(region))
		} else {
			dl.Merged += correction(x, empty)
		}
	}

	return dl, nil
}

// correction counts the bits that differ between x and pd (FN + FP).
func correction(x, pd *bitset.BitSet) int {
	return int(x.SymmetricDifferenceCardinality(pd))
}

// unionOf returns the OR of rows[s]⊗cols[s] over the listed slots.
func unionOf(slots []int, rows, cols []*bitset.BitSet, m, n int) *binmat.Matrix {
	out, _ := binmat.New(m, n)
	for _, s := range slots {
		if rows[s].None() || cols[s].None() {
			continue
		}
		_ = out.OrOuter(rows[s], cols[s]) // lengths validated by the caller
	}

	return out
}

// validateSlots checks that rows and cols describe the same slots with
// vectors of length m and n.
func validateSlots(rows, cols []*bitset.BitSet, X *binmat.Matrix) error {
	if err := binmat.ValidateNotNil(X); err != nil {
		return err
	}
	if len(rows) != len(cols) {
		return fmt.Errorf("%d row vectors, %d column vectors: %w", len(rows), len(cols), ErrShapeMismatch)
	}
	m, n := X.Dims()
	for s := range rows {
		if err := binmat.ValidateVecLen(rows[s], m); err != nil {
			return fmt.Errorf("slot %d rows: %w", s, err)
		}
		if err := binmat.ValidateVecLen(cols[s], n); err != nil {
			return fmt.Errorf("slot %d cols: %w", s, err)
		}
	}

	return nil
}
