// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/boolmf/binmat"
	"gonum.org/v1/gonum/mat"
)

// Pool is an ordered collection of candidate vectors of equal length.
// Candidates keep the index of the row they were derived from (Origin).
// The owner mutates a pool only through Remove and Downsample.
type Pool struct {
	vecLen int              // length of every candidate
	vecs   []*bitset.BitSet // candidates, in construction order
	origin []int            // source row of each candidate
}

// NewPool wraps vecs (copied) as a pool; origins default to 0..len-1.
// Every vector must have length vecLen.
func NewPool(vecLen int, vecs []*bitset.BitSet) (*Pool, error) {
	if err := binmat.ValidatePositive("vecLen", vecLen); err != nil {
		return nil, fmt.Errorf("basis.NewPool: %w", err)
	}
	p := &Pool{
		vecLen: vecLen,
		vecs:   make([]*bitset.BitSet, len(vecs)),
		origin: make([]int, len(vecs)),
	}
	for i, v := range vecs {
		if err := binmat.ValidateVecLen(v, vecLen); err != nil {
			return nil, fmt.Errorf("basis.NewPool[%d]: %w", i, err)
		}
		p.vecs[i] = v.Clone()
		p.origin[i] = i
	}

	return p, nil
}

// Len returns the number of candidates left.
func (p *Pool) Len() int { return len(p.vecs) }

// VecLen returns the length of every candidate.
func (p *Pool) VecLen() int { return p.vecLen }

// At returns candidate i (read-only), or nil when out of range.
func (p *Pool) At(i int) *bitset.BitSet {
	if i < 0 || i >= len(p.vecs) {
		return nil
	}

	return p.vecs[i]
}

// Origin returns the source row index of candidate i, or -1 when out of range.
func (p *Pool) Origin(i int) int {
	if i < 0 || i >= len(p.origin) {
		return -1
	}

	return p.origin[i]
}

// Remove deletes candidate i, preserving the order of the rest.
func (p *Pool) Remove(i int) error {
	if i < 0 || i >= len(p.vecs) {
		return fmt.Errorf("basis.Pool.Remove(%d): %w", i, binmat.ErrOutOfRange)
	}
	p.vecs = append(p.vecs[:i], p.vecs[i+1:]...)
	p.origin = append(p.origin[:i], p.origin[i+1:]...)

	return nil
}

// Vectors returns deep copies of all candidates in order.
func (p *Pool) Vectors() []*bitset.BitSet {
	out := make([]*bitset.BitSet, len(p.vecs))
	for i, v := range p.vecs {
		out[i] = v.Clone()
	}

	return out
}

// Clone returns an independent copy of the pool.
func (p *Pool) Clone() *Pool {
	return &Pool{
		vecLen: p.vecLen,
		vecs:   p.Vectors(),
		origin: append([]int(nil), p.origin...),
	}
}

// Downsample keeps at most k candidates, chosen without replacement with
// probability proportional to their population; survivors keep their
// relative order. Pools of size <= k are left untouched.
func (p *Pool) Downsample(k int, rng *rand.Rand) error {
	if err := binmat.ValidatePositive("n_basis", k); err != nil {
		return fmt.Errorf("basis.Pool.Downsample: %w", err)
	}
	if len(p.vecs) <= k {
		return nil
	}
	weights := make([]float64, len(p.vecs))
	for i, v := range p.vecs {
		weights[i] = float64(v.Count())
	}
	keep := sampleWeighted(weights, k, rng)
	vecs := make([]*bitset.BitSet, len(keep))
	origin := make([]int, len(keep))
	for i, idx := range keep {
		vecs[i] = p.vecs[idx]
		origin[i] = p.origin[idx]
	}
	p.vecs, p.origin = vecs, origin

	return nil
}

// FromAssociation binarizes assoc at tau (entry kept iff >= tau) and returns
// the non-empty rows as a pool, in their original order.
//
// Errors: binmat.ErrInvalidParameter when tau∉[0,1].
func FromAssociation(assoc mat.Matrix, tau float64) (*Pool, error) {
	if err := binmat.ValidateUnit("tau", tau); err != nil {
		return nil, fmt.Errorf("basis.FromAssociation: %w", err)
	}
	bin, err := binmat.Binarize(assoc, tau)
	if err != nil {
		return nil, fmt.Errorf("basis.FromAssociation: %w", err)
	}

	rows, cols := bin.Dims()
	p := &Pool{vecLen: cols}
	for i := 0; i < rows; i++ {
		row := bin.RowBits(i)
		if row.None() {
			continue // an all-zero candidate can never contribute
		}
		p.vecs = append(p.vecs, row.Clone())
		p.origin = append(p.origin, i)
	}

	return p, nil
}
