// SPDX-License-Identifier: MIT

package bmf

// Test bridge: exposes unexported helpers to bmf_test only.

const MaxExhaustiveRankLimit = maxExhaustiveRankLimit

var (
	ExportedParallelFor = parallelFor
	ExportedUnionOf     = unionOf
)

// DualWeights_TestOnly returns the effective (wfp, wfn) pair of c.
func DualWeights_TestOnly(c Config) (float64, float64) { return c.dualWeights() }

// Schedule_TestOnly returns the effective lazy-update trajectory of c.
func Schedule_TestOnly(c Config) []float64 { return c.schedule() }
