// SPDX-License-Identifier: MIT

// Package binmat - row-bitset storage & safe accessors.
//
// Purpose:
//   - Keep one bitset per row so row-wise coverage and rank-1 unions are word-parallel.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// AI-Hints:
//   - Hot loops in sibling packages read rows through RowBits (no copy); never mutate them.
//   - Use Clone before handing a matrix to code that mutates it.
//
// Complexity quicksheet:
//   - New: O(r*c/64); At/Set: O(1); Clone: O(r*c/64); String: O(r*c).

package binmat

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"
	ctxSet      = "Set"
	ctxRow      = "Row"
	ctxCol      = "Col"
	ctxSetRow   = "SetRow"
	ctxSetCol   = "SetCol"
	ctxNew      = "New"
	ctxFromRows = "FromRows"
)

// Matrix is a dense-shaped, bit-packed binary matrix.
//   - r,c hold dimensions (rows, cols).
//   - rows[i] is a bitset of length c; bit j set ⇔ entry (i,j) is 1.
type Matrix struct {
	r, c int              // row and column counts (> 0)
	rows []*bitset.BitSet // one bitset per row, each of length c
}

// New creates an r×c all-zero matrix.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity: O(r*c/64) time and memory.
func New(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(ctxNew, ErrInvalidDimensions)
	}
	bits := make([]*bitset.BitSet, rows)
	for i := range bits {
		bits[i] = bitset.New(uint(cols))
	}

	return &Matrix{r: rows, c: cols, rows: bits}, nil
}

// ZerosLike returns a new all-zero matrix with the shape of m.
func ZerosLike(m *Matrix) *Matrix {
	z, _ := New(m.r, m.c) // shape of a live matrix is always valid

	return z
}

// FromRows builds a matrix whose row i is a copy of rows[i].
// Every vector must have length cols.
//
// Errors: ErrInvalidDimensions, ErrNilMatrix, ErrShapeMismatch.
func FromRows(rows []*bitset.BitSet, cols int) (*Matrix, error) {
	m, err := New(len(rows), cols)
	if err != nil {
		return nil, matrixErrorf(ctxFromRows, err)
	}
	for i, row := range rows {
		if row == nil {
			return nil, matrixErrorf(ctxFromRows, ErrNilMatrix)
		}
		if err = ValidateVecLen(row, cols); err != nil {
			return nil, matrixErrorf(ctxFromRows, err)
		}
		m.rows[i] = row.Clone()
	}

	return m, nil
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.c }

// Dims packs Rows() and Cols() into a single call, mirroring gonum's mat.Matrix.
func (m *Matrix) Dims() (rows, cols int) { return m.r, m.c }

// inBounds reports whether (row, col) addresses a cell of m.
func (m *Matrix) inBounds(row, col int) bool {
	return row >= 0 && row < m.r && col >= 0 && col < m.c
}

// At reports whether entry (row, col) is set.
//
// Errors: ErrOutOfRange on invalid indices.
// Complexity: O(1).
func (m *Matrix) At(row, col int) (bool, error) {
	if !m.inBounds(row, col) {
		return false, indexErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return m.rows[row].Test(uint(col)), nil
}

// Set assigns entry (row, col).
//
// Errors: ErrOutOfRange on invalid indices.
// Complexity: O(1).
func (m *Matrix) Set(row, col int, v bool) error {
	if !m.inBounds(row, col) {
		return indexErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	m.rows[row].SetTo(uint(col), v)

	return nil
}

// RowBits returns the live bitset backing row i, or nil when i is out of range.
// The caller must treat it as read-only.
func (m *Matrix) RowBits(i int) *bitset.BitSet {
	if i < 0 || i >= m.r {
		return nil
	}

	return m.rows[i]
}

// Row returns a copy of row i as a vector of length Cols().
func (m *Matrix) Row(i int) (*bitset.BitSet, error) {
	if i < 0 || i >= m.r {
		return nil, indexErrorf(ctxRow, i, 0, ErrOutOfRange)
	}

	return m.rows[i].Clone(), nil
}

// Col returns column j as a vector of length Rows().
// Complexity: O(r).
func (m *Matrix) Col(j int) (*bitset.BitSet, error) {
	if j < 0 || j >= m.c {
		return nil, indexErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	out := bitset.New(uint(m.r))
	for i := 0; i < m.r; i++ {
		if m.rows[i].Test(uint(j)) {
			out.Set(uint(i))
		}
	}

	return out, nil
}

// SetRow overwrites row i with v (copied).
func (m *Matrix) SetRow(i int, v *bitset.BitSet) error {
	if i < 0 || i >= m.r {
		return indexErrorf(ctxSetRow, i, 0, ErrOutOfRange)
	}
	if err := ValidateVecLen(v, m.c); err != nil {
		return matrixErrorf(ctxSetRow, err)
	}
	m.rows[i] = v.Clone()

	return nil
}

// SetCol overwrites column j with v, one bit per row.
// Complexity: O(r).
func (m *Matrix) SetCol(j int, v *bitset.BitSet) error {
	if j < 0 || j >= m.c {
		return indexErrorf(ctxSetCol, 0, j, ErrOutOfRange)
	}
	if err := ValidateVecLen(v, m.r); err != nil {
		return matrixErrorf(ctxSetCol, err)
	}
	for i := 0; i < m.r; i++ {
		m.rows[i].SetTo(uint(j), v.Test(uint(i)))
	}

	return nil
}

// Clone returns a deep copy; mutations of the copy never reach m.
func (m *Matrix) Clone() *Matrix {
	bits := make([]*bitset.BitSet, m.r)
	for i, row := range m.rows {
		bits[i] = row.Clone()
	}

	return &Matrix{r: m.r, c: m.c, rows: bits}
}

// Equal reports whether a and b have the same shape and the same set bits.
func Equal(a, b *Matrix) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	for i := 0; i < a.r; i++ {
		if !a.rows[i].Equal(b.rows[i]) {
			return false
		}
	}

	return true
}

// Formatting literals.
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// String renders rows as "[1, 0, 1]" lines for diagnostics.
// Not for hot paths.
func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if m.rows[i].Test(uint(j)) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
