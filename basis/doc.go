// SPDX-License-Identifier: MIT

// Package basis builds the candidate pools that seed every factorization.
//
// A candidate is one binary vector proposed as the fixed ("driving") side of
// a rank-1 pattern before its complementary side is matched. Three
// generators are provided:
//
//   - Association + FromAssociation: the Asso construction. Column (or row)
//     co-occurrence XᵀX is normalized into confidences assoc[i,j] =
//     |i ∧ j| / |i| and thresholded at tau; all-zero rows are dropped.
//   - RandomRows: non-empty rows (or columns) of X, down-sampled without
//     replacement with probability proportional to their population.
//   - RandomBits: synthetic Bernoulli(p) vectors.
//
// Randomness always flows from an explicit *rand.Rand built by NewRand, so a
// seed reproduces a pool exactly.
package basis
