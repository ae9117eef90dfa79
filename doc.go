// Package boolmf approximates a binary matrix X (m×n) by the Boolean product
// of two binary factors, U (m×k) and V (n×k), under a weighted
// false-positive / false-negative objective.
//
// What is inside?
//
//	binmat/    - bit-packed binary matrices and vectors, Boolean algebra, gonum bridge
//	coverage/  - confusion counts, dual-weight and cover scores, per-axis scores, metrics
//	basis/     - association matrix and candidate pools (asso, random_rows, random_bits)
//	bmf/       - greedy Asso, column and exhaustive row refiners, the lazy-update
//	             multi-weight engine, description length, record sinks
//	cmd/boolmf - command-line front end
//
// Quick example:
//
//	    X            U     V
//	[1 1 0 0]     [1 0]  [1 0]
//	[1 1 0 0]  ≈  [1 0]  [1 0]
//	[0 0 1 1]     [0 1]  [0 1]
//	[0 0 1 1]     [0 1]  [0 1]
//
//	res, err := bmf.Fit(X, bmf.NewConfig(bmf.WithRank(2)))
//
// Every run is deterministic for a fixed Seed, whatever the Workers setting.
//
//	go get github.com/katalvlaran/boolmf
package boolmf
