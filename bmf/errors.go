// SPDX-License-Identifier: MIT

package bmf

import (
	"fmt"

	"github.com/katalvlaran/boolmf/binmat"
)

// Sentinels re-exported from binmat so callers can match with a single import.
var (
	// ErrShapeMismatch reports operands of incompatible dimensions.
	ErrShapeMismatch = binmat.ErrShapeMismatch

	// ErrInvalidParameter reports a configuration value outside its domain.
	ErrInvalidParameter = binmat.ErrInvalidParameter
)

// bmfErrorf wraps err with an operation tag.
func bmfErrorf(op string, err error) error {
	return fmt.Errorf("bmf.%s: %w", op, err)
}

// Status is the terminal state of a fitting run.
type Status int

const (
	// StatusDone means the run reached its natural end (target rank, refiner
	// fixpoint, iteration cap).
	StatusDone Status = iota

	// StatusEarlyStopped means an early-stop policy fired; the partial
	// factorization is valid and usable.
	StatusEarlyStopped
)

// String names the status for logs.
func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusEarlyStopped:
		return "early-stopped"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// StopReason is the human-readable reason a run ended.
type StopReason string

const (
	ReasonTargetRank    StopReason = "target rank reached"
	ReasonEmptyPool     StopReason = "empty candidate pool"
	ReasonNoImprovement StopReason = "no improving pattern"
	ReasonTolerance     StopReason = "reconstruction error below tol"
	ReasonIterationCap  StopReason = "iteration cap reached"
	ReasonConverged     StopReason = "convergence criterion met"
)
