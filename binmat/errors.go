// SPDX-License-Identifier: MIT
// Package binmat: sentinel error set.
// Every algorithm in boolmf reports structural and configuration problems
// through these sentinels; tests match them via errors.Is.

package binmat

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "binmat: ..." for easy grepping. Wrap with
// context through matrixErrorf; never compare error strings.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("binmat: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("binmat: index out of range")

	// ErrShapeMismatch indicates incompatible operand shapes (scoring, matching,
	// description length, boolean products). Fatal; never silently broadcast.
	ErrShapeMismatch = errors.New("binmat: shape mismatch")

	// ErrInvalidParameter signals a configuration value outside its documented
	// domain (threshold, density, pool size, weight, init method).
	ErrInvalidParameter = errors.New("binmat: invalid parameter")

	// ErrNonBinary signals an entry that is neither 0 nor 1 at ingestion.
	ErrNonBinary = errors.New("binmat: non-binary value")

	// ErrNilMatrix indicates that a nil matrix or vector was used.
	ErrNilMatrix = errors.New("binmat: nil matrix")

	// ErrRagged indicates that row slices passed to a constructor differ in length.
	ErrRagged = errors.New("binmat: rows have different lengths")
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("binmat.%s: %w", op, err)
}

// indexErrorf wraps err with an operation tag and coordinates.
func indexErrorf(op string, row, col int, err error) error {
	return fmt.Errorf("binmat.%s(%d,%d): %w", op, row, col, err)
}
