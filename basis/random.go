// SPDX-License-Identifier: MIT

// Package basis - seeded randomness and random candidate generators.
//
// Goals:
//   - Determinism: same seed ⇒ identical pools across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Generators run on the owner's
//     goroutine only; parallel workers never draw random numbers.

package basis

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/boolmf/binmat"
	"github.com/samber/lo"
)

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// sampleWeighted draws k distinct indices with probability proportional to
// weights (Efraimidis–Spirakis keys ln(u)/w). Zero weights are never drawn
// while positive ones remain. The result is sorted ascending.
//
// Complexity: O(n log n).
func sampleWeighted(weights []float64, k int, rng *rand.Rand) []int {
	n := len(weights)
	if k >= n {
		return lo.Range(n)
	}

	keys := make([]float64, n)
	for i, w := range weights {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		if w <= 0 {
			keys[i] = math.Inf(-1)
			continue
		}
		keys[i] = math.Log(u) / w
	}

	idx := lo.Range(n)
	sort.SliceStable(idx, func(a, b int) bool { return keys[idx[a]] > keys[idx[b]] })
	out := idx[:k]
	sort.Ints(out)

	return out
}

// vectorsOf returns the candidate-length vectors of X along dim:
// dim=1 ⇒ rows of X (length Cols), dim=0 ⇒ columns of X (length Rows).
func vectorsOf(X *binmat.Matrix, dim int) ([]*bitset.BitSet, int) {
	src := X
	if dim == 0 {
		src = X.T()
	}
	out := make([]*bitset.BitSet, src.Rows())
	for i := range out {
		out[i] = src.RowBits(i)
	}

	return out, src.Cols()
}

// RandomRows selects non-empty rows (dim=1) or columns (dim=0) of X as
// candidates. When more exist than nBasis, it down-samples without
// replacement with probability proportional to population. When fewer
// exist, the pool holds all of them: Len() reports the actual count.
//
// Errors: binmat.ErrNilMatrix, binmat.ErrInvalidParameter (nBasis<=0, bad dim).
func RandomRows(X *binmat.Matrix, nBasis, dim int, rng *rand.Rand) (*Pool, error) {
	if err := binmat.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("basis.RandomRows: %w", err)
	}
	if err := binmat.ValidatePositive("n_basis", nBasis); err != nil {
		return nil, fmt.Errorf("basis.RandomRows: %w", err)
	}
	if err := binmat.ValidateDim(dim); err != nil {
		return nil, fmt.Errorf("basis.RandomRows: %w", err)
	}

	vecs, vecLen := vectorsOf(X, dim)
	nonEmpty := lo.Filter(lo.Range(len(vecs)), func(i, _ int) bool { return vecs[i].Any() })

	p := &Pool{vecLen: vecLen}
	for _, i := range nonEmpty {
		p.vecs = append(p.vecs, vecs[i].Clone())
		p.origin = append(p.origin, i)
	}
	if len(p.vecs) > nBasis {
		if err := p.Downsample(nBasis, rng); err != nil {
			return nil, fmt.Errorf("basis.RandomRows: %w", err)
		}
	}

	return p, nil
}

// RandomBits synthesizes nBasis vectors whose bits are independently 1 with
// probability p. Vectors have length Cols (dim=1) or Rows (dim=0) of X.
//
// Errors: binmat.ErrInvalidParameter when p∉[0,1], nBasis<=0 or bad dim.
func RandomBits(X *binmat.Matrix, nBasis int, p float64, dim int, rng *rand.Rand) (*Pool, error) {
	if err := binmat.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("basis.RandomBits: %w", err)
	}
	if err := binmat.ValidatePositive("n_basis", nBasis); err != nil {
		return nil, fmt.Errorf("basis.RandomBits: %w", err)
	}
	if err := binmat.ValidateUnit("p", p); err != nil {
		return nil, fmt.Errorf("basis.RandomBits: %w", err)
	}
	if err := binmat.ValidateDim(dim); err != nil {
		return nil, fmt.Errorf("basis.RandomBits: %w", err)
	}

	vecLen := X.Cols()
	if dim == 0 {
		vecLen = X.Rows()
	}
	pool := &Pool{
		vecLen: vecLen,
		vecs:   make([]*bitset.BitSet, nBasis),
		origin: make([]int, nBasis),
	}
	for i := 0; i < nBasis; i++ {
		v := bitset.New(uint(vecLen))
		for j := 0; j < vecLen; j++ {
			if rng.Float64() < p {
				v.Set(uint(j))
			}
		}
		pool.vecs[i] = v
		pool.origin[i] = i
	}

	return pool, nil
}
