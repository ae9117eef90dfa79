// SPDX-License-Identifier: MIT

package bmf

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/katalvlaran/boolmf/basis"
	"github.com/katalvlaran/boolmf/binmat"
	"github.com/katalvlaran/boolmf/coverage"
)

// State is a node of the greedy rank selector's state machine.
//
//	Ready → Searching → Committed(rank) → Searching … → Done
//	                  ↘ EarlyStopped(reason)
type State int

const (
	StateReady State = iota
	StateSearching
	StateCommitted
	StateEarlyStopped
	StateDone
)

// String names the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateSearching:
		return "searching"
	case StateCommitted:
		return "committed"
	case StateEarlyStopped:
		return "early-stopped"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s == StateEarlyStopped || s == StateDone }

// FittingSession carries every piece of mutable state of one greedy run.
// U/V change only on the Searching → Committed transition; the refiners
// operate on the session once it is terminal.
type FittingSession struct {
	id   string
	cfg  Config
	X    *binmat.Matrix
	w    coverage.Weights
	rng  *rand.Rand
	sink Sink

	pool *basis.Pool
	fact *Factorization
	pred *binmat.Matrix

	state  State
	reason StopReason
	best   float64
	target int // 0 = no target rank
}

// NewSession validates cfg, builds the candidate pool and returns a session
// in StateReady.
//
// Errors: ErrInvalidParameter, binmat.ErrNilMatrix.
func NewSession(X *binmat.Matrix, cfg Config) (*FittingSession, error) {
	if err := binmat.ValidateNotNil(X); err != nil {
		return nil, bmfErrorf("NewSession", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := basis.NewRand(cfg.Seed)
	pool, err := buildPool(X, cfg, rng, 1)
	if err != nil {
		return nil, bmfErrorf("NewSession", err)
	}

	m, n := X.Dims()
	capacity := cfg.K
	if capacity == 0 {
		capacity = max(pool.Len(), 1)
	}
	fact, _ := NewFactorization(m, n, capacity) // dims and capacity are positive
	wfp, wfn := cfg.dualWeights()

	return &FittingSession{
		id:     uuid.NewString(),
		cfg:    cfg,
		X:      X,
		w:      coverage.Weights{FP: wfp, FN: wfn},
		rng:    rng,
		sink:   cfg.sink(),
		pool:   pool,
		fact:   fact,
		pred:   binmat.ZerosLike(X),
		state:  StateReady,
		target: cfg.K,
	}, nil
}

// ID returns the session id stamped on every record.
func (s *FittingSession) ID() string { return s.id }

// State returns the current state.
func (s *FittingSession) State() State { return s.state }

// Reason returns the stop reason once the session is terminal.
func (s *FittingSession) Reason() StopReason { return s.reason }

// BestScore returns the score of the last committed rank.
func (s *FittingSession) BestScore() float64 { return s.best }

// Pool returns the live candidate pool (read-only for callers).
func (s *FittingSession) Pool() *basis.Pool { return s.pool }

// Factorization returns the live factorization.
func (s *FittingSession) Factorization() *Factorization { return s.fact }

// Prediction returns a copy of the current reconstruction.
func (s *FittingSession) Prediction() *binmat.Matrix { return s.pred.Clone() }

// Run steps the session until it is terminal.
func (s *FittingSession) Run() error {
	for !s.state.Terminal() {
		if err := s.Step(); err != nil {
			return err
		}
	}

	return nil
}

// stop moves the session to a terminal state.
func (s *FittingSession) stop(st State, reason StopReason) {
	s.state, s.reason = st, reason
}

// status maps the terminal state to a Status.
func (s *FittingSession) status() Status {
	if s.state == StateEarlyStopped {
		return StatusEarlyStopped
	}

	return StatusDone
}

// result packages the terminal session.
func (s *FittingSession) result() (*Result, error) {
	metrics, err := coverage.Evaluate(s.X, s.pred)
	if err != nil {
		return nil, err
	}

	return &Result{
		Session:       s.id,
		Algo:          s.cfg.Algo,
		Factorization: s.fact,
		Status:        s.status(),
		Reason:        s.reason,
		BestScore:     s.best,
		Metrics:       metrics,
	}, nil
}

// rankRecord builds the record of rank column r.
func (s *FittingSession) rankRecord(phase string, r int, score float64) (RankRecord, error) {
	metrics, err := coverage.Evaluate(s.X, s.pred)
	if err != nil {
		return RankRecord{}, err
	}
	u, v, err := s.fact.ColumnPair(r)
	if err != nil {
		return RankRecord{}, err
	}

	return RankRecord{
		Session: s.id,
		Algo:    s.cfg.Algo,
		Phase:   phase,
		Rank:    r,
		Score:   score,
		Metrics: metrics,
		RowPop:  binmat.Pop(u),
		ColPop:  binmat.Pop(v),
	}, nil
}

// defaultNBasis is the pool size used when NBasis is 0: the number of
// vectors the input offers along dim.
func defaultNBasis(X *binmat.Matrix, dim int) int {
	if dim == 1 {
		return X.Rows()
	}

	return X.Cols()
}

// buildPool generates candidates of the side selected by dim (dim=1: length
// Cols, the fixed side for basisDim=1) with the configured init method.
func buildPool(X *binmat.Matrix, cfg Config, rng *rand.Rand, dim int) (*basis.Pool, error) {
	nBasis := cfg.NBasis
	if nBasis == 0 {
		nBasis = defaultNBasis(X, dim)
	}

	switch cfg.InitMethod {
	case InitAsso:
		assoc, err := basis.Association(X, dim)
		if err != nil {
			return nil, err
		}
		pool, err := basis.FromAssociation(assoc, cfg.Tau)
		if err != nil {
			return nil, err
		}
		if cfg.NBasis > 0 {
			if err = pool.Downsample(cfg.NBasis, rng); err != nil {
				return nil, err
			}
		}
		return pool, nil

	case InitRandomRows:
		return basis.RandomRows(X, nBasis, dim, rng)

	case InitRandomBits:
		return basis.RandomBits(X, nBasis, cfg.P, dim, rng)

	default:
		return nil, fmt.Errorf("init method %v: %w", cfg.InitMethod, ErrInvalidParameter)
	}
}
