// SPDX-License-Identifier: MIT

// Package bmf - multi-weight lazy-update engine.
//
// Purpose:
//   - Keep n_basis candidate patterns alive at once. Every pass re-derives
//     one side of every slot against the union of all other slots, then
//     flips which side is held fixed.
//
// Lazy update:
//   - All slots of a pass read the state as it was when the pass began
//     (an EngineState snapshot). Writes are isolated per slot, so the
//     per-slot work runs on the worker pool with identical results.
//
// Heuristics after each pass (in order): step the weight schedule of
// converged slots, reinitialize empty slots, Remove, Merge, RefineOverlap.
//
// Randomness is drawn only on the owner goroutine (reinitialization).

package bmf

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/katalvlaran/boolmf/basis"
	"github.com/katalvlaran/boolmf/binmat"
	"github.com/katalvlaran/boolmf/coverage"
)

const phaseLazyUpdate = "lazy-update"

// EngineState is the per-slot state of the lazy-update engine.
// Rows[s] has length m and Cols[s] length n; both are always allocated.
// Dims[s] is the side held fixed in the next pass: 1 = Cols drives and
// Rows is derived, 0 = Rows drives and Cols is derived.
type EngineState struct {
	Dims      []int
	Rows      []*bitset.BitSet
	Cols      []*bitset.BitSet
	Scores    []float64
	Schedules []WeightSchedule
	Iteration int
}

// Slots returns the number of slots.
func (st *EngineState) Slots() int { return len(st.Dims) }

// Clone returns a deep copy.
func (st *EngineState) Clone() *EngineState {
	out := &EngineState{
		Dims:      append([]int(nil), st.Dims...),
		Rows:      make([]*bitset.BitSet, len(st.Rows)),
		Cols:      make([]*bitset.BitSet, len(st.Cols)),
		Scores:    append([]float64(nil), st.Scores...),
		Schedules: make([]WeightSchedule, len(st.Schedules)),
		Iteration: st.Iteration,
	}
	for s := range st.Rows {
		out.Rows[s] = st.Rows[s].Clone()
		out.Cols[s] = st.Cols[s].Clone()
	}
	for s, ws := range st.Schedules {
		out.Schedules[s] = WeightSchedule{Values: append([]float64(nil), ws.Values...), Cursor: ws.Cursor}
	}

	return out
}

// Weights returns the current weight of every slot.
func (st *EngineState) Weights() []float64 {
	return lo.Map(st.Schedules, func(ws WeightSchedule, _ int) float64 { return ws.Current() })
}

// restOf returns the union of all slots' patterns except slot s.
func (st *EngineState) restOf(s, m, n int) *binmat.Matrix {
	others := lo.Filter(lo.Range(st.Slots()), func(o, _ int) bool { return o != s })

	return unionOf(others, st.Rows, st.Cols, m, n)
}

// empty reports whether slot s encodes no cell.
func (st *EngineState) empty(s int) bool {
	return st.Rows[s].None() || st.Cols[s].None()
}

// Engine runs the lazy-update protocol on one input matrix.
type Engine struct {
	id   string
	cfg  Config
	X    *binmat.Matrix
	rng  *rand.Rand
	sink Sink
	st   *EngineState

	status Status
	reason StopReason
}

// NewEngine validates cfg, builds the initial pool with the configured init
// method and allocates one slot per candidate. An empty pool yields an
// engine with zero slots whose Run stops early with ReasonEmptyPool.
//
// Errors: ErrInvalidParameter, binmat.ErrNilMatrix.
func NewEngine(X *binmat.Matrix, cfg Config) (*Engine, error) {
	if err := binmat.ValidateNotNil(X); err != nil {
		return nil, bmfErrorf("NewEngine", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	schedule, err := NewWeightSchedule(cfg.schedule()...)
	if err != nil {
		return nil, err
	}
	rng := basis.NewRand(cfg.Seed)
	pool, err := buildPool(X, cfg, rng, 1)
	if err != nil {
		return nil, bmfErrorf("NewEngine", err)
	}

	m, _ := X.Dims()
	slots := pool.Len()
	st := &EngineState{
		Dims:      lo.Times(slots, func(int) int { return 1 }),
		Rows:      lo.Times(slots, func(int) *bitset.BitSet { return binmat.NewVec(m) }),
		Cols:      pool.Vectors(),
		Scores:    make([]float64, slots),
		Schedules: lo.Times(slots, func(int) WeightSchedule { return schedule }),
	}

	return &Engine{id: uuid.NewString(), cfg: cfg, X: X, rng: rng, sink: cfg.sink(), st: st}, nil
}

// NewEngineFromState resumes an engine from a caller-built state (copied).
//
// Errors: ErrShapeMismatch when the state does not fit X; ErrInvalidParameter
// for bad dims or schedules.
func NewEngineFromState(X *binmat.Matrix, cfg Config, st *EngineState) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("bmf.NewEngineFromState: nil state: %w", ErrInvalidParameter)
	}
	if err := validateSlots(st.Rows, st.Cols, X); err != nil {
		return nil, bmfErrorf("NewEngineFromState", err)
	}
	slots := len(st.Rows)
	if len(st.Dims) != slots || len(st.Scores) != slots || len(st.Schedules) != slots {
		return nil, fmt.Errorf("bmf.NewEngineFromState: per-slot slices disagree: %w", ErrShapeMismatch)
	}
	for s := 0; s < slots; s++ {
		if err := binmat.ValidateDim(st.Dims[s]); err != nil {
			return nil, bmfErrorf("NewEngineFromState", err)
		}
		if _, err := NewWeightSchedule(st.Schedules[s].Values...); err != nil {
			return nil, err
		}
		if c := st.Schedules[s].Cursor; c < 0 || c >= len(st.Schedules[s].Values) {
			return nil, fmt.Errorf("bmf.NewEngineFromState: slot %d cursor %d: %w", s, c, ErrInvalidParameter)
		}
	}

	return &Engine{
		id:   uuid.NewString(),
		cfg:  cfg,
		X:    X,
		rng:  basis.NewRand(cfg.Seed),
		sink: cfg.sink(),
		st:   st.Clone(),
	}, nil
}

// ID returns the session id stamped on every record.
func (e *Engine) ID() string { return e.id }

// State returns a copy of the current state.
func (e *Engine) State() *EngineState { return e.st.Clone() }

// Factorization returns the slots whose both sides are non-empty as rank
// columns, in slot order. An engine with no live slot yields a rank-0
// factorization of capacity 1.
func (e *Engine) Factorization() *Factorization {
	m, n := e.X.Dims()
	live := lo.Filter(lo.Range(e.st.Slots()), func(s, _ int) bool { return !e.st.empty(s) })
	f, _ := NewFactorization(m, n, max(len(live), 1))
	for _, s := range live {
		_ = f.Commit(e.st.Rows[s], e.st.Cols[s]) // lengths hold by construction
	}

	return f
}

// Run performs passes until MaxIter or until cfg.Converged reports true.
func (e *Engine) Run() (*Result, error) {
	if e.st.Slots() == 0 {
		e.status, e.reason = StatusEarlyStopped, ReasonEmptyPool
		return e.result()
	}
	e.status, e.reason = StatusDone, ReasonIterationCap
	for it := 0; it < e.cfg.MaxIter; it++ {
		if err := e.Step(); err != nil {
			return nil, err
		}
		if e.cfg.Converged != nil && e.cfg.Converged(e.st.Clone()) {
			e.status, e.reason = StatusEarlyStopped, ReasonConverged
			break
		}
	}

	return e.result()
}

// result packages the current state.
func (e *Engine) result() (*Result, error) {
	f := e.Factorization()
	metrics, err := coverage.Evaluate(e.X, f.Predict())
	if err != nil {
		return nil, err
	}

	return &Result{
		Session:       e.id,
		Algo:          e.cfg.Algo,
		Factorization: f,
		Status:        e.status,
		Reason:        e.reason,
		BestScore:     lo.Sum(e.st.Scores),
		Metrics:       metrics,
		Iterations:    e.st.Iteration,
		Engine:        e.st.Clone(),
	}, nil
}

// Step performs one full pass over all slots.
func (e *Engine) Step() error {
	m, n := e.X.Dims()
	snap := e.st.Clone()
	slots := snap.Slots()

	matches := make([]Match, slots)
	err := parallelFor(slots, e.cfg.Workers, func(s int) error {
		d := snap.Dims[s]
		fixed := snap.Cols[s]
		if d == 0 {
			fixed = snap.Rows[s]
		}
		var err error
		matches[s], err = matchWith(e.cfg.Objective, e.X, snap.restOf(s, m, n), fixed, d, snap.Schedules[s].Current())
		return err
	})
	if err != nil {
		return bmfErrorf("Engine.Step", err)
	}

	for s, mt := range matches {
		if snap.Dims[s] == 1 {
			e.st.Rows[s] = mt.Vector
		} else {
			e.st.Cols[s] = mt.Vector
		}
		e.st.Scores[s] = mt.Exclusive
		e.st.Dims[s] = 1 - snap.Dims[s]
	}

	converged := e.converged(snap.Scores)
	for _, s := range converged {
		e.st.Schedules[s], _ = Step(e.st.Schedules[s])
	}

	fresh := make([]bool, slots)
	for s := 0; s < slots; s++ {
		if e.st.empty(s) {
			if err = e.reinit(s); err != nil {
				return err
			}
			fresh[s] = true
		}
	}

	var removed []int
	if e.cfg.Remove {
		if removed, err = e.remove(converged, fresh); err != nil {
			return err
		}
	}
	var merged [][2]int
	if e.cfg.Merge {
		if merged, err = e.merge(converged, fresh); err != nil {
			return err
		}
	}
	if e.cfg.RefineOverlap {
		if err = e.refineOverlap(snap, fresh); err != nil {
			return err
		}
	}

	e.st.Iteration++
	rate, _ := coverage.ErrorRate(e.X, e.Factorization().Predict())
	e.sink.Iteration(IterationRecord{
		Session:   e.id,
		Algo:      e.cfg.Algo,
		Phase:     phaseLazyUpdate,
		Iteration: e.st.Iteration,
		Scores:    append([]float64(nil), e.st.Scores...),
		Weights:   e.st.Weights(),
		Converged: converged,
		Removed:   removed,
		Merged:    merged,
		ErrorRate: rate,
	})

	return nil
}

// converged lists the slots whose exclusive score moved by less than
// DiffThreshold relative to prev. Slots with a zero previous score are not
// classified.
func (e *Engine) converged(prev []float64) []int {
	out := make([]int, 0, len(prev))
	for s, p := range prev {
		if p == 0 {
			continue
		}
		if math.Abs(e.st.Scores[s]-p)/math.Abs(p) < e.cfg.DiffThreshold {
			out = append(out, s)
		}
	}

	return out
}

// reinit restarts slot s from one candidate drawn from the residual: the
// cells of X no other slot covers. The slot's rows are cleared, its column
// side drives the next pass and its schedule rewinds. An exhausted residual
// leaves the slot empty.
func (e *Engine) reinit(s int) error {
	m, n := e.X.Dims()
	residual, err := binmat.AndNot(e.X, e.st.restOf(s, m, n))
	if err != nil {
		return bmfErrorf("reinit", err)
	}

	cfg := e.cfg
	cfg.NBasis = 1
	pool, err := buildPool(residual, cfg, e.rng, 1)
	if err != nil {
		return bmfErrorf("reinit", err)
	}
	if pool.Len() > 1 {
		if err = pool.Downsample(1, e.rng); err != nil {
			return bmfErrorf("reinit", err)
		}
	}

	e.st.Cols[s] = binmat.NewVec(n)
	if pool.Len() > 0 {
		e.st.Cols[s] = pool.At(0).Clone()
	}
	e.st.Rows[s] = binmat.NewVec(m)
	e.st.Dims[s] = 1
	e.st.Scores[s] = 0
	e.st.Schedules[s] = Reset(e.st.Schedules[s], 0)

	return nil
}

// remove reinitializes converged slots whose own encoding costs more than
// storing their region explicitly. Each slot is judged alone; overlapping
// pairs are weighed by merge.
func (e *Engine) remove(converged []int, fresh []bool) ([]int, error) {
	var out []int
	for _, s := range converged {
		if fresh[s] {
			continue
		}
		dl, err := ExclusiveDescriptionLength([]int{s}, e.st.Rows, e.st.Cols, e.X)
		if err != nil {
			return out, err
		}
		if dl.Pattern <= dl.None {
			continue
		}
		if err = e.reinit(s); err != nil {
			return out, err
		}
		fresh[s] = true
		out = append(out, s)
	}

	return out, nil
}

// overlaps reports whether slots a and b share rows or columns, and whether
// they share both.
func (st *EngineState) overlaps(a, b int) (either, both bool) {
	rows := st.Rows[a].IntersectionCardinality(st.Rows[b]) > 0
	cols := st.Cols[a].IntersectionCardinality(st.Cols[b]) > 0

	return rows || cols, rows && cols
}

// merge folds b into a (a < b) when at least one is converged, they overlap
// on a side and the merged encoding is cheaper than keeping both.
func (e *Engine) merge(converged []int, fresh []bool) ([][2]int, error) {
	isConv := make([]bool, e.st.Slots())
	for _, s := range converged {
		isConv[s] = true
	}

	var out [][2]int
	for a := 0; a < e.st.Slots(); a++ {
		for b := a + 1; b < e.st.Slots(); b++ {
			if fresh[a] || fresh[b] || !(isConv[a] || isConv[b]) {
				continue
			}
			if either, _ := e.st.overlaps(a, b); !either {
				continue
			}
			dl, err := ExclusiveDescriptionLength([]int{a, b}, e.st.Rows, e.st.Cols, e.X)
			if err != nil {
				return out, err
			}
			if dl.Merged >= dl.Pattern {
				continue
			}
			e.st.Rows[a].InPlaceUnion(e.st.Rows[b])
			e.st.Cols[a].InPlaceUnion(e.st.Cols[b])
			e.st.Scores[a] = 0
			if err = e.reinit(b); err != nil {
				return out, err
			}
			fresh[a], fresh[b] = true, true
			out = append(out, [2]int{a, b})
		}
	}

	return out, nil
}

// refineOverlap re-derives, for pairs overlapping on both sides, the side of
// the later slot that this pass produced, scored only on the cells of X that
// no other slot covers.
func (e *Engine) refineOverlap(snap *EngineState, fresh []bool) error {
	m, n := e.X.Dims()
	for a := 0; a < e.st.Slots(); a++ {
		for b := a + 1; b < e.st.Slots(); b++ {
			if fresh[a] || fresh[b] {
				continue
			}
			if _, both := e.st.overlaps(a, b); !both {
				continue
			}
			region, err := binmat.AndNot(e.X, e.st.restOf(b, m, n))
			if err != nil {
				return bmfErrorf("refineOverlap", err)
			}
			d := snap.Dims[b]
			fixed := e.st.Cols[b]
			if d == 0 {
				fixed = e.st.Rows[b]
			}
			mt, err := matchWith(e.cfg.Objective, region, binmat.ZerosLike(region), fixed, d, e.st.Schedules[b].Current())
			if err != nil {
				return bmfErrorf("refineOverlap", err)
			}
			if d == 1 {
				e.st.Rows[b] = mt.Vector
			} else {
				e.st.Cols[b] = mt.Vector
			}
		}
	}

	return nil
}
