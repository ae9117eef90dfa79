// SPDX-License-Identifier: MIT

package bmf_test

import (
	"testing"

	"github.com/katalvlaran/boolmf/bmf"
)

// BenchmarkFit measures every algorithm on planted matrices of growing size.
func BenchmarkFit(b *testing.B) {
	cases := []struct {
		name    string
		m, n, k int
	}{
		{"Small", 64, 48, 4},
		{"Medium", 256, 128, 8},
	}
	algos := []bmf.Algo{bmf.GreedyAsso, bmf.ColumnRefine, bmf.ExhaustiveRowRefine, bmf.MultiWeightLazyUpdate}

	for _, tc := range cases {
		tc := tc
		X := plantedMatrix(b, tc.m, tc.n, tc.k, 42)
		for _, algo := range algos {
			cfg := bmf.NewConfig(
				bmf.WithAlgo(algo),
				bmf.WithRank(tc.k),
				bmf.WithNBasis(2*tc.k),
				bmf.WithMaxIter(10),
			)
			b.Run(tc.name+"/"+algo.String(), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := bmf.Fit(X, cfg); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
