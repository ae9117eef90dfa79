// SPDX-License-Identifier: MIT
// Package: binmat
//
// Purpose:
//   - Boolean algebra over *Matrix: element-wise OR/AND/AND-NOT, rank-1 outer
//     products, the Boolean product U∘Vᵀ, transpose and reductions.
//   - Each kernel works row by row on whole bitset words.
//
// Determinism & Performance:
//   - Fixed i-order; set bits visited in ascending order via NextSet.
//   - Out-of-place kernels allocate exactly one result; OrOuter is in-place.

package binmat

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

const (
	opOr          = "Or"
	opAnd         = "And"
	opAndNot      = "AndNot"
	opOuter       = "Outer"
	opOrOuter     = "OrOuter"
	opBoolProduct = "BoolProduct"
)

// rowwise applies f to each aligned row pair of a and b into a fresh matrix.
func rowwise(op string, a, b *Matrix, f func(x, y *bitset.BitSet) *bitset.BitSet) (*Matrix, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(op, err)
	}
	out := &Matrix{r: a.r, c: a.c, rows: make([]*bitset.BitSet, a.r)}
	for i := 0; i < a.r; i++ {
		out.rows[i] = f(a.rows[i], b.rows[i])
	}

	return out, nil
}

// Or returns a ∨ b (element-wise maximum).
func Or(a, b *Matrix) (*Matrix, error) {
	return rowwise(opOr, a, b, func(x, y *bitset.BitSet) *bitset.BitSet { return x.Union(y) })
}

// And returns a ∧ b.
func And(a, b *Matrix) (*Matrix, error) {
	return rowwise(opAnd, a, b, func(x, y *bitset.BitSet) *bitset.BitSet { return x.Intersection(y) })
}

// AndNot returns a ∧ ¬b, i.e. the cells of a that b does not cover.
func AndNot(a, b *Matrix) (*Matrix, error) {
	return rowwise(opAndNot, a, b, func(x, y *bitset.BitSet) *bitset.BitSet { return x.Difference(y) })
}

// Outer returns the rank-1 pattern u⊗v: entry (i,j) is set iff u[i] and v[j].
// u has length m (one bit per row), v has length n (one bit per column).
//
// Errors: ErrInvalidDimensions for m or n <= 0, ErrShapeMismatch on vector lengths.
// Complexity: O(|u|*n/64 + m).
func Outer(u, v *bitset.BitSet, m, n int) (*Matrix, error) {
	out, err := New(m, n)
	if err != nil {
		return nil, matrixErrorf(opOuter, err)
	}
	if err = out.OrOuter(u, v); err != nil {
		return nil, err
	}

	return out, nil
}

// OrOuter updates m in place to m ∨ (u⊗v).
// This is the single mutation primitive used to commit a rank-1 pattern.
//
// Errors: ErrShapeMismatch when len(u) != Rows() or len(v) != Cols().
// Complexity: O(|u|*n/64).
func (m *Matrix) OrOuter(u, v *bitset.BitSet) error {
	if err := ValidateVecLen(u, m.r); err != nil {
		return matrixErrorf(opOrOuter, err)
	}
	if err := ValidateVecLen(v, m.c); err != nil {
		return matrixErrorf(opOrOuter, err)
	}
	for i, ok := u.NextSet(0); ok; i, ok = u.NextSet(i + 1) {
		m.rows[i].InPlaceUnion(v)
	}

	return nil
}

// OrInPlace updates m to m ∨ b.
func (m *Matrix) OrInPlace(b *Matrix) error {
	if err := ValidateSameShape(m, b); err != nil {
		return matrixErrorf(opOr, err)
	}
	for i := 0; i < m.r; i++ {
		m.rows[i].InPlaceUnion(b.rows[i])
	}

	return nil
}

// BoolProduct returns the Boolean product of factors U (m×k) and V (n×k):
//
//	X[i,j] = OR_r (U[i,r] AND V[j,r])
//
// Errors: ErrShapeMismatch when U and V disagree on k.
// Complexity: O(k * m * n / 64).
func BoolProduct(U, V *Matrix) (*Matrix, error) {
	if err := ValidateNotNil(U); err != nil {
		return nil, matrixErrorf(opBoolProduct, err)
	}
	if err := ValidateNotNil(V); err != nil {
		return nil, matrixErrorf(opBoolProduct, err)
	}
	if U.c != V.c {
		return nil, fmt.Errorf("binmat.%s: U has k=%d, V has k=%d: %w", opBoolProduct, U.c, V.c, ErrShapeMismatch)
	}
	out, err := New(U.r, V.r)
	if err != nil {
		return nil, matrixErrorf(opBoolProduct, err)
	}
	var uc, vc *bitset.BitSet
	for r := 0; r < U.c; r++ {
		uc, _ = U.Col(r) // r < U.c by loop bound
		if uc.None() {
			continue
		}
		vc, _ = V.Col(r)
		_ = out.OrOuter(uc, vc) // lengths match by construction
	}

	return out, nil
}

// T returns the transpose of m as a new matrix.
// Complexity: O(nnz + r*c/64).
func (m *Matrix) T() *Matrix {
	out, _ := New(m.c, m.r) // a live matrix has positive dims
	for i := 0; i < m.r; i++ {
		row := m.rows[i]
		for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
			out.rows[j].Set(uint(i))
		}
	}

	return out
}

// RowSums returns the population count of every row.
func (m *Matrix) RowSums() []int {
	out := make([]int, m.r)
	for i, row := range m.rows {
		out[i] = int(row.Count())
	}

	return out
}

// ColSums returns the population count of every column.
// Complexity: O(nnz).
func (m *Matrix) ColSums() []int {
	out := make([]int, m.c)
	for _, row := range m.rows {
		for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
			out[j]++
		}
	}

	return out
}

// Count returns the number of set entries.
func (m *Matrix) Count() int {
	var n uint
	for _, row := range m.rows {
		n += row.Count()
	}

	return int(n)
}

// IsZero reports whether no entry is set.
func (m *Matrix) IsZero() bool {
	for _, row := range m.rows {
		if row.Any() {
			return false
		}
	}

	return true
}

// Sums dispatches RowSums (dim=1, one entry per row) or ColSums (dim=0,
// one entry per column), matching the axis convention of the coverage scorer.
func (m *Matrix) Sums(dim int) ([]int, error) {
	if err := ValidateDim(dim); err != nil {
		return nil, matrixErrorf("Sums", err)
	}
	if dim == 1 {
		return m.RowSums(), nil
	}

	return m.ColSums(), nil
}
