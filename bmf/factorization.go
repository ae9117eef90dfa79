// SPDX-License-Identifier: MIT

package bmf

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/boolmf/binmat"
)

// Factorization owns the binary factors U (m×k) and V (n×k).
// Rank columns 0..Rank()-1 are committed; the rest are all zero.
// A column pair is always replaced whole, never partially.
type Factorization struct {
	U, V *binmat.Matrix
	used int
}

// NewFactorization allocates empty factors for an m×n input and capacity k.
//
// Errors: ErrInvalidParameter when m, n or k is not positive.
func NewFactorization(m, n, k int) (*Factorization, error) {
	for _, d := range []struct {
		name string
		v    int
	}{{"m", m}, {"n", n}, {"k", k}} {
		if err := binmat.ValidatePositive(d.name, d.v); err != nil {
			return nil, bmfErrorf("NewFactorization", err)
		}
	}
	U, _ := binmat.New(m, k)
	V, _ := binmat.New(n, k)

	return &Factorization{U: U, V: V}, nil
}

// Dims returns the shape of the reconstructed matrix.
func (f *Factorization) Dims() (m, n int) { return f.U.Rows(), f.V.Rows() }

// Capacity returns the number of allocated rank columns.
func (f *Factorization) Capacity() int { return f.U.Cols() }

// Rank returns the number of committed rank columns.
func (f *Factorization) Rank() int { return f.used }

// ColumnPair returns copies of U[:,r] (length m) and V[:,r] (length n).
func (f *Factorization) ColumnPair(r int) (u, v *bitset.BitSet, err error) {
	if u, err = f.U.Col(r); err != nil {
		return nil, nil, bmfErrorf("ColumnPair", err)
	}
	v, _ = f.V.Col(r)

	return u, v, nil
}

// SetPair overwrites rank column r of both factors.
func (f *Factorization) SetPair(r int, u, v *bitset.BitSet) error {
	if r < 0 || r >= f.Capacity() {
		return fmt.Errorf("bmf.SetPair(%d): %w", r, binmat.ErrOutOfRange)
	}
	if err := f.U.SetCol(r, u); err != nil {
		return bmfErrorf("SetPair", err)
	}
	if err := f.V.SetCol(r, v); err != nil {
		return bmfErrorf("SetPair", err)
	}

	return nil
}

// Commit writes (u, v) into the next free rank column.
//
// Errors: ErrInvalidParameter when every column is committed; ErrShapeMismatch
// on vector lengths.
func (f *Factorization) Commit(u, v *bitset.BitSet) error {
	if f.used >= f.Capacity() {
		return fmt.Errorf("bmf.Commit: rank %d exceeds capacity %d: %w", f.used+1, f.Capacity(), ErrInvalidParameter)
	}
	if err := binmat.ValidateVecLen(u, f.U.Rows()); err != nil {
		return bmfErrorf("Commit", err)
	}
	if err := binmat.ValidateVecLen(v, f.V.Rows()); err != nil {
		return bmfErrorf("Commit", err)
	}
	_ = f.SetPair(f.used, u, v) // index and lengths checked above
	f.used++

	return nil
}

// Predict returns the Boolean product U∘Vᵀ.
func (f *Factorization) Predict() *binmat.Matrix {
	pd, _ := binmat.BoolProduct(f.U, f.V) // factors always share k

	return pd
}

// PredictExcept returns the Boolean product with rank column r left out.
func (f *Factorization) PredictExcept(r int) *binmat.Matrix {
	pd, _ := binmat.New(f.U.Rows(), f.V.Rows())
	for c := 0; c < f.Capacity(); c++ {
		if c == r {
			continue
		}
		u, _ := f.U.Col(c)
		if u.None() {
			continue
		}
		v, _ := f.V.Col(c)
		_ = pd.OrOuter(u, v)
	}

	return pd
}

// Clone returns an independent copy.
func (f *Factorization) Clone() *Factorization {
	return &Factorization{U: f.U.Clone(), V: f.V.Clone(), used: f.used}
}

// Transposed returns the factorization of Xᵀ: U and V swap roles.
func (f *Factorization) Transposed() *Factorization {
	return &Factorization{U: f.V.Clone(), V: f.U.Clone(), used: f.used}
}

// Compact returns a copy whose capacity equals the committed rank (at least 1).
func (f *Factorization) Compact() *Factorization {
	m, n := f.Dims()
	out, _ := NewFactorization(m, n, max(f.used, 1))
	for r := 0; r < f.used; r++ {
		u, v, _ := f.ColumnPair(r)
		_ = out.Commit(u, v)
	}

	return out
}
