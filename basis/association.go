// SPDX-License-Identifier: MIT

package basis

import (
	"fmt"

	"github.com/katalvlaran/boolmf/binmat"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const opAssociation = "Association"

// Association builds the real-valued association (confidence) matrix of X.
//
// MAIN DESCRIPTION:
//   - dim=1: n×n over columns, assoc[i,j] = |col_i ∧ col_j| / |col_i| (XᵀX,
//     each row divided by its column population). Its rows are candidates of
//     length n, the fixed side for basis_dim=1.
//   - dim=0: m×m over rows, assoc[i,j] = |row_i ∧ row_j| / |row_i| (XXᵀ,
//     row-normalized). Its rows are candidates of length m.
//
// Note: dim names the axis the candidates index, not the product, so dim=1
// is XᵀX rather than X·Xᵀ.
//
// Behavior highlights:
//   - An empty column/row yields an all-zero association row; no NaN is produced.
//   - The result is built once and treated as read-only by callers.
//
// Errors: binmat.ErrNilMatrix, binmat.ErrInvalidParameter for dim∉{0,1}.
//
// Complexity: O(m·n²) for dim=1, O(m²·n) for dim=0 (gonum dense product).
func Association(X *binmat.Matrix, dim int) (*mat.Dense, error) {
	if err := binmat.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("basis.%s: %w", opAssociation, err)
	}
	if err := binmat.ValidateDim(dim); err != nil {
		return nil, fmt.Errorf("basis.%s: %w", opAssociation, err)
	}

	xd := X.ToDense()
	var (
		assoc mat.Dense
		pop   []int
	)
	if dim == 1 {
		assoc.Mul(xd.T(), xd) // n×n co-occurrence of columns
		pop = X.ColSums()
	} else {
		assoc.Mul(xd, xd.T()) // m×m co-occurrence of rows
		pop = X.RowSums()
	}

	for i, p := range pop {
		row := assoc.RawRowView(i)
		if p == 0 {
			// Guard the division explicitly; the row is already zero.
			for j := range row {
				row[j] = 0
			}
			continue
		}
		floats.Scale(1/float64(p), row)
	}

	return &assoc, nil
}
