// SPDX-License-Identifier: MIT
// Package: binmat
//
// Purpose:
//  - Provide a single, canonical source of truth for shape/nil/range checks.
//  - Return plain sentinels (lightly tagged) so call sites can wrap uniformly.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package binmat

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
func ValidateNotNil(m *Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and have equal dimensions.
// Complexity: O(1).
func ValidateSameShape(a, b *Matrix) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrShapeMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrShapeMismatch)
	}

	return nil
}

// ValidateVecLen ensures v is non-nil and has length n exactly.
// Lengths matter: bitset.Equal and the row fast paths assume aligned lengths.
func ValidateVecLen(v *bitset.BitSet, n int) error {
	if v == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if int(v.Len()) != n {
		return validatorErrorf("ValidateVecLen", ErrShapeMismatch)
	}

	return nil
}

// ValidateFloatLen ensures a score vector has length n.
func ValidateFloatLen(xs []float64, n int) error {
	if len(xs) != n {
		return validatorErrorf("ValidateFloatLen", ErrShapeMismatch)
	}

	return nil
}

// ValidateUnit ensures x is a finite value in [0,1]; name tags the error.
// Used for thresholds, densities and penalty weights.
func ValidateUnit(name string, x float64) error {
	if math.IsNaN(x) || x < 0 || x > 1 {
		return fmt.Errorf("%s=%g not in [0,1]: %w", name, x, ErrInvalidParameter)
	}

	return nil
}

// ValidatePositive ensures n > 0; name tags the error.
func ValidatePositive(name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%s=%d must be > 0: %w", name, n, ErrInvalidParameter)
	}

	return nil
}

// ValidateDim ensures dim selects a side of a matrix (0 = rows, 1 = columns).
func ValidateDim(dim int) error {
	if dim != 0 && dim != 1 {
		return fmt.Errorf("dim=%d must be 0 or 1: %w", dim, ErrInvalidParameter)
	}

	return nil
}
