// SPDX-License-Identifier: MIT

// Package bmf implements Boolean Matrix Factorization: given a binary m×n
// matrix X and a rank k, it finds binary factors U (m×k) and V (n×k) whose
// Boolean product U∘Vᵀ approximates X under a weighted false-positive /
// false-negative objective.
//
// Algorithms (selected by Config.Algo):
//
//	GreedyAsso             Asso: association-matrix candidates, one greedy
//	                         rank at a time, best candidate by Vector Matcher.
//	ColumnRefine           Asso followed by iterative re-optimization of one
//	                         U column at a time until a full sweep stalls.
//	ExhaustiveRowRefine    Asso followed by an exact per-row search over all
//	                         2^k row patterns of U (rows fan out to workers).
//	MultiWeightLazyUpdate  a fixed pool of candidate patterns updated in
//	                         alternating directions with per-slot weight
//	                         schedules; every slot reads the snapshot of the
//	                         previous pass (lazy update) and converged slots
//	                         may be removed or merged by description length.
//
// Shared building blocks are free functions: MatchVector / MatchVectorCover
// (the per-candidate optimization primitive) and ExclusiveDescriptionLength.
//
// Early stops are not errors. Fit returns a Result whose Status and Reason
// explain why fitting ended; the partial Factorization is always valid.
// Structural and configuration problems are reported as ErrShapeMismatch
// and ErrInvalidParameter before any matrix work begins.
//
// Quick example:
//
//	X := binmat.MustFromDense([][]float64{{1, 1, 0}, {1, 1, 0}, {0, 0, 1}})
//	res, err := bmf.Fit(X, bmf.NewConfig(bmf.WithRank(2), bmf.WithTau(0.5)))
//	if err != nil { ... }
//	pred := res.Factorization.Predict()
package bmf
