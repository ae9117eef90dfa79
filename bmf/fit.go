// SPDX-License-Identifier: MIT

package bmf

import (
	"fmt"

	"github.com/katalvlaran/boolmf/binmat"
	"github.com/katalvlaran/boolmf/coverage"
)

// Result is the outcome of a fitting run. Early stops are not errors: the
// factorization is valid whatever the Status.
type Result struct {
	Session       string
	Algo          Algo
	Factorization *Factorization
	Status        Status
	Reason        StopReason
	BestScore     float64
	Metrics       coverage.Metrics

	// Iterations counts engine passes (MultiWeightLazyUpdate only).
	Iterations int

	// Engine is the final slot state (MultiWeightLazyUpdate only).
	Engine *EngineState
}

// Fit factorizes X with the algorithm selected by cfg.Algo.
//
// Contract:
//   - cfg is validated before any matrix work.
//   - GreedyAsso runs the greedy selector; ColumnRefine and
//     ExhaustiveRowRefine refine its output; MultiWeightLazyUpdate runs
//     the lazy-update engine.
//   - With K=0 the returned factorization is trimmed to its committed rank.
//
// Errors: ErrInvalidParameter, ErrShapeMismatch, binmat.ErrNilMatrix.
func Fit(X *binmat.Matrix, cfg Config) (*Result, error) {
	if err := binmat.ValidateNotNil(X); err != nil {
		return nil, bmfErrorf("Fit", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Algo {
	case MultiWeightLazyUpdate:
		e, err := NewEngine(X, cfg)
		if err != nil {
			return nil, err
		}
		return e.Run()

	case GreedyAsso, ColumnRefine, ExhaustiveRowRefine:
		s, err := NewSession(X, cfg)
		if err != nil {
			return nil, err
		}
		if err = s.Run(); err != nil {
			return nil, err
		}
		if cfg.K == 0 {
			s.fact = s.fact.Compact()
		}
		switch cfg.Algo {
		case ColumnRefine:
			if _, err = s.refineColumns(); err != nil {
				return nil, err
			}
		case ExhaustiveRowRefine:
			if err = s.refineRows(); err != nil {
				return nil, err
			}
		}
		return s.result()

	default:
		return nil, fmt.Errorf("bmf.Fit: algorithm %v: %w", cfg.Algo, ErrInvalidParameter)
	}
}

// FitTransposed factorizes Xᵀ with the same configuration and returns the
// factors swapped back, so U still indexes the rows of X.
func FitTransposed(X *binmat.Matrix, cfg Config) (*Result, error) {
	if err := binmat.ValidateNotNil(X); err != nil {
		return nil, bmfErrorf("FitTransposed", err)
	}
	res, err := Fit(X.T(), cfg)
	if err != nil {
		return nil, err
	}
	res.Factorization = res.Factorization.Transposed()

	return res, nil
}
