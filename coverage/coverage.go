// SPDX-License-Identifier: MIT

package coverage

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/katalvlaran/boolmf/binmat"
)

// Axis selects the reduction of a coverage computation.
type Axis int

const (
	// Global reduces over the whole matrix (one value).
	Global Axis = -1

	// Columns yields one value per column (numpy axis=0).
	Columns Axis = 0

	// Rows yields one value per row (numpy axis=1).
	Rows Axis = 1
)

// String names the axis for logs.
func (a Axis) String() string {
	switch a {
	case Global:
		return "global"
	case Columns:
		return "columns"
	case Rows:
		return "rows"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// AxisOf maps a basis dimension (0 or 1) to the axis along which the
// complementary vector is scored: basis_dim=1 scores rows, basis_dim=0 columns.
func AxisOf(dim int) Axis {
	if dim == 1 {
		return Rows
	}

	return Columns
}

// Weights are the dual penalty weights of Score.
type Weights struct {
	FP float64 // penalty per false positive
	FN float64 // penalty per false negative
}

// Symmetric returns Weights{FP: w, FN: 1-w}, the default pairing when only
// the false-positive weight is configured.
func Symmetric(w float64) Weights {
	return Weights{FP: w, FN: 1 - w}
}

// Counts is a confusion tally.
type Counts struct {
	TP, FP, FN, TN int
}

// Add returns the element-wise sum of two tallies.
func (c Counts) Add(o Counts) Counts {
	return Counts{TP: c.TP + o.TP, FP: c.FP + o.FP, FN: c.FN + o.FN, TN: c.TN + o.TN}
}

// Score evaluates TP − w.FP·FP − w.FN·FN.
func (c Counts) Score(w Weights) float64 {
	return float64(c.TP) - w.FP*float64(c.FP) - w.FN*float64(c.FN)
}

// Cover evaluates TP − w·FP.
func (c Counts) Cover(w float64) float64 {
	return float64(c.TP) - w*float64(c.FP)
}

// VecCounts tallies one aligned pair of binary vectors of length n.
// Complexity: O(n/64).
func VecCounts(gt, pd *bitset.BitSet, n int) Counts {
	tp := int(gt.IntersectionCardinality(pd))
	fp := int(pd.Count()) - tp
	fn := int(gt.Count()) - tp

	return Counts{TP: tp, FP: fp, FN: fn, TN: n - tp - fp - fn}
}

// Confusion tallies gt against pd over the whole matrix.
func Confusion(gt, pd *binmat.Matrix) (Counts, error) {
	if err := binmat.ValidateSameShape(gt, pd); err != nil {
		return Counts{}, fmt.Errorf("coverage.Confusion: %w", err)
	}
	var total Counts
	m, n := gt.Dims()
	for i := 0; i < m; i++ {
		total = total.Add(VecCounts(gt.RowBits(i), pd.RowBits(i), n))
	}

	return total, nil
}

// ConfusionAxis tallies gt against pd per row, per column, or globally
// (a single-element slice).
//
// Errors: binmat.ErrShapeMismatch, binmat.ErrInvalidParameter for an unknown axis.
// Complexity: O(m*n/64) for Rows and Global, O(nnz) for Columns.
func ConfusionAxis(gt, pd *binmat.Matrix, axis Axis) ([]Counts, error) {
	if err := binmat.ValidateSameShape(gt, pd); err != nil {
		return nil, fmt.Errorf("coverage.ConfusionAxis: %w", err)
	}
	m, n := gt.Dims()
	switch axis {
	case Global:
		c, _ := Confusion(gt, pd) // shapes already validated
		return []Counts{c}, nil

	case Rows:
		out := make([]Counts, m)
		for i := 0; i < m; i++ {
			out[i] = VecCounts(gt.RowBits(i), pd.RowBits(i), n)
		}
		return out, nil

	case Columns:
		out := make([]Counts, n)
		var g, p *bitset.BitSet
		for i := 0; i < m; i++ {
			g, p = gt.RowBits(i), pd.RowBits(i)
			for j, ok := p.NextSet(0); ok; j, ok = p.NextSet(j + 1) {
				if g.Test(j) {
					out[j].TP++
				} else {
					out[j].FP++
				}
			}
			for j, ok := g.NextSet(0); ok; j, ok = g.NextSet(j + 1) {
				if !p.Test(j) {
					out[j].FN++
				}
			}
		}
		for j := range out {
			out[j].TN = m - out[j].TP - out[j].FP - out[j].FN
		}
		return out, nil

	default:
		return nil, fmt.Errorf("coverage.ConfusionAxis: axis %v: %w", axis, binmat.ErrInvalidParameter)
	}
}

// Score returns TP − w.FP·FP − w.FN·FN over the whole matrix.
func Score(gt, pd *binmat.Matrix, w Weights) (float64, error) {
	c, err := Confusion(gt, pd)
	if err != nil {
		return 0, err
	}

	return c.Score(w), nil
}

// ScoreAxis returns the dual-weight score along axis.
func ScoreAxis(gt, pd *binmat.Matrix, w Weights, axis Axis) ([]float64, error) {
	cs, err := ConfusionAxis(gt, pd, axis)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Score(w)
	}

	return out, nil
}

// Cover returns TP − w·FP over the whole matrix.
func Cover(gt, pd *binmat.Matrix, w float64) (float64, error) {
	c, err := Confusion(gt, pd)
	if err != nil {
		return 0, err
	}

	return c.Cover(w), nil
}

// CoverAxis returns the single-weight cover score along axis.
func CoverAxis(gt, pd *binmat.Matrix, w float64, axis Axis) ([]float64, error) {
	cs, err := ConfusionAxis(gt, pd, axis)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Cover(w)
	}

	return out, nil
}
