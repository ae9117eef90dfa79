// SPDX-License-Identifier: MIT

// Package binmat provides the binary matrix used by every factorization
// routine in boolmf.
//
// A *Matrix stores an m×n matrix of logical booleans as one bitset per row
// (github.com/bits-and-blooms/bitset). Rows are the unit of work for the
// coverage scorer and the vector matcher: true positives of a row are a
// single IntersectionCardinality, a rank-1 union is one InPlaceUnion per
// selected row.
//
// The package offers:
//
//   - construction: New, FromDense, FromRows, Binarize (gonum mat.Matrix at a threshold);
//   - safe accessors: At/Set return sentinel errors instead of panicking;
//   - boolean algebra: Or, And, AndNot, Outer, OrOuter, BoolProduct, T;
//   - reductions: RowSums, ColSums, Count;
//   - vectors: NewVec, Ones, VecFromSlice, VecToSlice, VecLen helpers.
//
// All loops run in a fixed row-major order, so results are deterministic.
// Shape problems are reported as ErrShapeMismatch and never broadcast.
package binmat
