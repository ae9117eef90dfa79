// SPDX-License-Identifier: MIT

package bmf

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/katalvlaran/boolmf/binmat"
)

// WeightSchedule is a weight trajectory plus a cursor.
// It is plain data: Step and Reset return new values and never mutate their
// argument, so engine state can be snapshotted by copying.
type WeightSchedule struct {
	Values []float64
	Cursor int
}

// NewWeightSchedule validates values (non-empty, each in [0,1]) and returns a
// schedule positioned at the first one.
func NewWeightSchedule(values ...float64) (WeightSchedule, error) {
	if len(values) == 0 {
		return WeightSchedule{}, fmt.Errorf("bmf.NewWeightSchedule: empty trajectory: %w", ErrInvalidParameter)
	}
	for i, w := range values {
		if err := binmat.ValidateUnit(fmt.Sprintf("w_list[%d]", i), w); err != nil {
			return WeightSchedule{}, bmfErrorf("NewWeightSchedule", err)
		}
	}

	return WeightSchedule{Values: append([]float64(nil), values...)}, nil
}

// Current returns the weight under the cursor.
func (s WeightSchedule) Current() float64 {
	return s.Values[s.Cursor]
}

// Step advances the cursor by one, clamped at the last value, and returns
// the new schedule with its current weight.
func Step(s WeightSchedule) (WeightSchedule, float64) {
	if s.Cursor < len(s.Values)-1 {
		s.Cursor++
	}

	return s, s.Current()
}

// Reset moves the cursor to i, clamped into range.
func Reset(s WeightSchedule, i int) WeightSchedule {
	s.Cursor = lo.Clamp(i, 0, len(s.Values)-1)

	return s
}

// LinearWeights returns n weights evenly spaced from `from` to `to`.
// n=1 yields [from].
func LinearWeights(from, to float64, n int) ([]float64, error) {
	if err := binmat.ValidatePositive("n", n); err != nil {
		return nil, bmfErrorf("LinearWeights", err)
	}
	for _, w := range []struct {
		name string
		v    float64
	}{{"from", from}, {"to", to}} {
		if err := binmat.ValidateUnit(w.name, w.v); err != nil {
			return nil, bmfErrorf("LinearWeights", err)
		}
	}
	if n == 1 {
		return []float64{from}, nil
	}
	step := (to - from) / float64(n-1)

	return lo.Times(n, func(i int) float64 {
		if i == n-1 {
			return to
		}
		return from + step*float64(i)
	}), nil
}
