// SPDX-License-Identifier: MIT

package binmat

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// NewVec returns an all-zero binary vector of length n.
func NewVec(n int) *bitset.BitSet {
	return bitset.New(uint(n))
}

// Ones returns an all-ones binary vector of length n.
func Ones(n int) *bitset.BitSet {
	v := bitset.New(uint(n))
	if n > 0 {
		v.FlipRange(0, uint(n))
	}

	return v
}

// VecFromSlice converts a 0/1 slice into a vector of the same length.
// Any value other than 0 or 1 is rejected with ErrNonBinary.
func VecFromSlice(xs []float64) (*bitset.BitSet, error) {
	v := bitset.New(uint(len(xs)))
	for i, x := range xs {
		switch x {
		case 0:
		case 1:
			v.Set(uint(i))
		default:
			return nil, fmt.Errorf("binmat.VecFromSlice[%d]=%g: %w", i, x, ErrNonBinary)
		}
	}

	return v, nil
}

// VecFromIndices returns a vector of length n with the listed positions set.
// Indices outside [0,n) are rejected with ErrOutOfRange.
func VecFromIndices(n int, idx ...int) (*bitset.BitSet, error) {
	v := bitset.New(uint(n))
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("binmat.VecFromIndices(%d): %w", i, ErrOutOfRange)
		}
		v.Set(uint(i))
	}

	return v, nil
}

// VecToSlice expands v into a 0/1 slice of length n.
func VecToSlice(v *bitset.BitSet, n int) []float64 {
	out := make([]float64, n)
	for i, ok := v.NextSet(0); ok && int(i) < n; i, ok = v.NextSet(i + 1) {
		out[i] = 1
	}

	return out
}

// VecIndices lists the set positions of v in ascending order.
func VecIndices(v *bitset.BitSet) []int {
	out := make([]int, 0, v.Count())
	for i, ok := v.NextSet(0); ok; i, ok = v.NextSet(i + 1) {
		out = append(out, int(i))
	}

	return out
}

// Pop returns the population count of v; a nil vector counts as empty.
func Pop(v *bitset.BitSet) int {
	if v == nil {
		return 0
	}

	return int(v.Count())
}
