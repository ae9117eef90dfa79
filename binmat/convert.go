// SPDX-License-Identifier: MIT

// Package binmat - conversions between *Matrix and numeric layouts.
//
// Purpose:
//   - Ingest [][]float64 literals (tests, CLI) with strict 0/1 validation.
//   - Bridge to gonum (gonum.org/v1/gonum/mat) for real-valued kernels such as
//     the association matrix XᵀX, and binarize real matrices back at a threshold.

package binmat

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	opFromDense = "FromDense"
	opBinarize  = "Binarize"
)

// FromDense builds a matrix from row slices holding only 0 or 1.
//
// Errors:
//   - ErrInvalidDimensions for an empty input or empty first row.
//   - ErrRagged when rows differ in length.
//   - ErrNonBinary for any other value.
func FromDense(data [][]float64) (*Matrix, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, matrixErrorf(opFromDense, ErrInvalidDimensions)
	}
	m, err := New(len(data), len(data[0]))
	if err != nil {
		return nil, matrixErrorf(opFromDense, err)
	}
	for i, row := range data {
		if len(row) != m.c {
			return nil, fmt.Errorf("binmat.%s: row %d: %w", opFromDense, i, ErrRagged)
		}
		for j, v := range row {
			switch v {
			case 0:
			case 1:
				m.rows[i].Set(uint(j))
			default:
				return nil, indexErrorf(opFromDense, i, j, ErrNonBinary)
			}
		}
	}

	return m, nil
}

// MustFromDense is FromDense for literals known to be valid; it panics otherwise.
// Intended for tests and examples only.
func MustFromDense(data [][]float64) *Matrix {
	m, err := FromDense(data)
	if err != nil {
		panic(err)
	}

	return m
}

// Binarize returns a binary matrix with entry (i,j) set iff a[i,j] >= tau.
// NaN entries never pass the threshold.
//
// Errors: ErrInvalidParameter when tau is NaN or ±Inf; ErrInvalidDimensions for empty a.
func Binarize(a mat.Matrix, tau float64) (*Matrix, error) {
	if math.IsNaN(tau) || math.IsInf(tau, 0) {
		return nil, fmt.Errorf("binmat.%s: tau=%g: %w", opBinarize, tau, ErrInvalidParameter)
	}
	r, c := a.Dims()
	m, err := New(r, c)
	if err != nil {
		return nil, matrixErrorf(opBinarize, err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if a.At(i, j) >= tau {
				m.rows[i].Set(uint(j))
			}
		}
	}

	return m, nil
}

// ToDense expands m into a gonum dense matrix of 0.0/1.0 values.
// Complexity: O(r*c) memory.
func (m *Matrix) ToDense() *mat.Dense {
	data := make([]float64, m.r*m.c)
	for i, row := range m.rows {
		base := i * m.c
		for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
			data[base+int(j)] = 1
		}
	}

	return mat.NewDense(m.r, m.c, data)
}
