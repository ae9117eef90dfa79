// SPDX-License-Identifier: MIT

// Package bmf: configuration for Fit.
// This file defines:
//   - documented defaults (single source of truth),
//   - Algo / InitMethod / Objective enumerations,
//   - Config plus functional Option setters (WithX),
//   - Config.Validate, the only place where parameters are checked.
//
// Setters only record values; all domain checks happen in Validate, before
// any matrix work, and report ErrInvalidParameter wrapped with the field.
package bmf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/boolmf/binmat"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTau is the association binarization threshold.
	DefaultTau = 0.5

	// DefaultWFP is the false-positive penalty; WFN defaults to 1-WFP.
	DefaultWFP = 0.5

	// DefaultP is the bit density of random_bits candidates.
	DefaultP = 0.2

	// DefaultMaxIter caps the passes of the lazy-update engine.
	DefaultMaxIter = 30

	// DefaultDiffThreshold is the relative score change under which a slot counts as converged.
	DefaultDiffThreshold = 0.05

	// DefaultMaxExhaustiveRank bounds k for the 2^k row enumeration.
	DefaultMaxExhaustiveRank = 16

	// maxExhaustiveRankLimit is the hard ceiling accepted for MaxExhaustiveRank.
	maxExhaustiveRankLimit = 24
)

// Algo selects the factorization variant.
type Algo int

const (
	// GreedyAsso is the Asso greedy rank selector.
	GreedyAsso Algo = iota

	// ColumnRefine runs GreedyAsso, then refines U one column at a time (AssoIter).
	ColumnRefine

	// ExhaustiveRowRefine runs GreedyAsso, then picks each U row by 2^k enumeration (AssoOpt).
	ExhaustiveRowRefine

	// MultiWeightLazyUpdate runs the lazy-update pattern engine.
	MultiWeightLazyUpdate
)

// String names the algorithm.
func (a Algo) String() string {
	switch a {
	case GreedyAsso:
		return "asso"
	case ColumnRefine:
		return "asso-iter"
	case ExhaustiveRowRefine:
		return "asso-opt"
	case MultiWeightLazyUpdate:
		return "lazy-update"
	default:
		return fmt.Sprintf("Algo(%d)", int(a))
	}
}

// ParseAlgo maps a name produced by Algo.String back to its value.
func ParseAlgo(s string) (Algo, error) {
	for _, a := range []Algo{GreedyAsso, ColumnRefine, ExhaustiveRowRefine, MultiWeightLazyUpdate} {
		if a.String() == s {
			return a, nil
		}
	}

	return 0, fmt.Errorf("bmf.ParseAlgo(%q): %w", s, ErrInvalidParameter)
}

// InitMethod selects how candidate vectors are generated.
type InitMethod int

const (
	// InitAsso thresholds the association matrix.
	InitAsso InitMethod = iota

	// InitRandomRows samples non-empty rows of the data.
	InitRandomRows

	// InitRandomBits synthesizes Bernoulli(P) vectors.
	InitRandomBits
)

// String names the init method.
func (m InitMethod) String() string {
	switch m {
	case InitAsso:
		return "asso"
	case InitRandomRows:
		return "random_rows"
	case InitRandomBits:
		return "random_bits"
	default:
		return fmt.Sprintf("InitMethod(%d)", int(m))
	}
}

// ParseInitMethod maps a name produced by InitMethod.String back to its value.
func ParseInitMethod(s string) (InitMethod, error) {
	for _, m := range []InitMethod{InitAsso, InitRandomRows, InitRandomBits} {
		if m.String() == s {
			return m, nil
		}
	}

	return 0, fmt.Errorf("bmf.ParseInitMethod(%q): %w", s, ErrInvalidParameter)
}

// Objective selects the scoring convention of the lazy-update engine.
type Objective int

const (
	// ObjectiveCover scores TP − w·FP (BMFInterleave).
	ObjectiveCover Objective = iota

	// ObjectiveDual scores TP − w·FP − (1−w)·FN (alternating multiple weights).
	ObjectiveDual
)

// String names the objective.
func (o Objective) String() string {
	switch o {
	case ObjectiveCover:
		return "cover"
	case ObjectiveDual:
		return "dual"
	default:
		return fmt.Sprintf("Objective(%d)", int(o))
	}
}

// ParseObjective maps a name produced by Objective.String back to its value.
func ParseObjective(s string) (Objective, error) {
	for _, o := range []Objective{ObjectiveCover, ObjectiveDual} {
		if o.String() == s {
			return o, nil
		}
	}

	return 0, fmt.Errorf("bmf.ParseObjective(%q): %w", s, ErrInvalidParameter)
}

// Config holds every parameter of a fitting run.
// Build it with DefaultConfig or NewConfig; unset optional weights are NaN.
type Config struct {
	Algo Algo

	// K is the target rank; 0 runs until an early stop fires.
	K int

	// Tau is the association binarization threshold in [0,1].
	Tau float64

	// WFP and WFN are the dual penalty weights in [0,1]. WFN = NaN means 1-WFP.
	WFP, WFN float64

	// W is the single cover weight (NaN = unset); WList is its per-slot trajectory.
	// When both are set, W must equal WList[0].
	W     float64
	WList []float64

	InitMethod InitMethod

	// NBasis is the candidate pool size; 0 defaults to the input dimension.
	NBasis int

	// P is the random_bits density in [0,1].
	P float64

	// Seed drives all randomness; 0 selects the fixed default seed.
	Seed int64

	// Tol stops the greedy selector once the error rate is below Tol (0 disables).
	Tol float64

	// EmptyBaseline seeds the first greedy rank with the score of the empty
	// prediction (−w_fn·|X|) instead of 0.
	EmptyBaseline bool

	// Lazy-update engine knobs.
	MaxIter       int
	DiffThreshold float64
	Objective     Objective
	Remove        bool
	Merge         bool
	RefineOverlap bool

	// Converged, when non-nil, is checked after every engine pass; returning
	// true ends the run early.
	Converged func(*EngineState) bool

	// MaxExhaustiveRank bounds k for ExhaustiveRowRefine.
	MaxExhaustiveRank int

	// Workers bounds parallel fan-out; 0 means GOMAXPROCS, 1 forces sequential.
	Workers int

	// Sink receives per-rank and per-iteration records; nil discards them.
	Sink Sink
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Algo:              GreedyAsso,
		Tau:               DefaultTau,
		WFP:               DefaultWFP,
		WFN:               math.NaN(),
		W:                 math.NaN(),
		InitMethod:        InitAsso,
		P:                 DefaultP,
		MaxIter:           DefaultMaxIter,
		DiffThreshold:     DefaultDiffThreshold,
		Objective:         ObjectiveCover,
		MaxExhaustiveRank: DefaultMaxExhaustiveRank,
	}
}

// Option mutates a Config. Options never validate; see Config.Validate.
type Option func(*Config)

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithAlgo selects the algorithm variant.
func WithAlgo(a Algo) Option { return func(c *Config) { c.Algo = a } }

// WithRank sets the target rank k (0 = until early stop).
func WithRank(k int) Option { return func(c *Config) { c.K = k } }

// WithTau sets the association threshold.
func WithTau(tau float64) Option { return func(c *Config) { c.Tau = tau } }

// WithFalsePositiveWeight sets WFP; WFN keeps following 1-WFP unless set explicitly.
func WithFalsePositiveWeight(w float64) Option { return func(c *Config) { c.WFP = w } }

// WithWeights sets both dual weights explicitly.
func WithWeights(wfp, wfn float64) Option {
	return func(c *Config) {
		c.WFP = wfp
		c.WFN = wfn
	}
}

// WithCoverWeight sets the single cover weight W.
func WithCoverWeight(w float64) Option { return func(c *Config) { c.W = w } }

// WithWeightSchedule sets the per-slot weight trajectory (copied).
func WithWeightSchedule(ws ...float64) Option {
	return func(c *Config) { c.WList = append([]float64(nil), ws...) }
}

// WithInitMethod selects the candidate generator.
func WithInitMethod(m InitMethod) Option { return func(c *Config) { c.InitMethod = m } }

// WithNBasis sets the candidate pool size.
func WithNBasis(n int) Option { return func(c *Config) { c.NBasis = n } }

// WithDensity sets the random_bits density.
func WithDensity(p float64) Option { return func(c *Config) { c.P = p } }

// WithSeed sets the random seed.
func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

// WithTol sets the greedy error-rate tolerance (strict: rate < tol stops).
func WithTol(tol float64) Option { return func(c *Config) { c.Tol = tol } }

// WithEmptyBaseline makes the first rank compete against the empty
// prediction rather than against 0.
func WithEmptyBaseline(on bool) Option { return func(c *Config) { c.EmptyBaseline = on } }

// WithMaxIter caps lazy-update passes.
func WithMaxIter(n int) Option { return func(c *Config) { c.MaxIter = n } }

// WithDiffThreshold sets the slot convergence threshold.
func WithDiffThreshold(t float64) Option { return func(c *Config) { c.DiffThreshold = t } }

// WithObjective selects the lazy-update scoring convention.
func WithObjective(o Objective) Option { return func(c *Config) { c.Objective = o } }

// WithRemove toggles the description-length removal heuristic.
func WithRemove(on bool) Option { return func(c *Config) { c.Remove = on } }

// WithMerge toggles the description-length merge heuristic.
func WithMerge(on bool) Option { return func(c *Config) { c.Merge = on } }

// WithRefineOverlap toggles the best-effort overlap refinement.
func WithRefineOverlap(on bool) Option { return func(c *Config) { c.RefineOverlap = on } }

// WithConvergence installs a caller-supplied pool convergence criterion.
func WithConvergence(f func(*EngineState) bool) Option { return func(c *Config) { c.Converged = f } }

// WithMaxExhaustiveRank bounds k for ExhaustiveRowRefine.
func WithMaxExhaustiveRank(k int) Option { return func(c *Config) { c.MaxExhaustiveRank = k } }

// WithWorkers bounds parallel fan-out.
func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

// WithSink installs a record sink.
func WithSink(s Sink) Option { return func(c *Config) { c.Sink = s } }

// dualWeights resolves the effective dual weights.
func (c Config) dualWeights() (wfp, wfn float64) {
	if math.IsNaN(c.WFN) {
		return c.WFP, 1 - c.WFP
	}

	return c.WFP, c.WFN
}

// schedule resolves the effective weight trajectory of the lazy-update engine:
// WList when given, else [W] when set, else [WFP].
func (c Config) schedule() []float64 {
	switch {
	case len(c.WList) > 0:
		return c.WList
	case !math.IsNaN(c.W):
		return []float64{c.W}
	default:
		return []float64{c.WFP}
	}
}

// sink returns the configured sink or a no-op one.
func (c Config) sink() Sink {
	if c.Sink == nil {
		return NopSink{}
	}

	return c.Sink
}

// paramErrorf tags ErrInvalidParameter with a field.
func paramErrorf(field string, format string, args ...any) error {
	return fmt.Errorf("bmf.Config.%s: %s: %w", field, fmt.Sprintf(format, args...), ErrInvalidParameter)
}

// Validate checks every field against its documented domain.
//
// Errors: ErrInvalidParameter wrapped with the offending field.
// Complexity: O(len(WList)).
func (c Config) Validate() error {
	switch c.Algo {
	case GreedyAsso, ColumnRefine, ExhaustiveRowRefine, MultiWeightLazyUpdate:
	default:
		return paramErrorf("Algo", "unknown algorithm %v", c.Algo)
	}
	switch c.InitMethod {
	case InitAsso, InitRandomRows, InitRandomBits:
	default:
		return paramErrorf("InitMethod", "unknown init method %v", c.InitMethod)
	}
	switch c.Objective {
	case ObjectiveCover, ObjectiveDual:
	default:
		return paramErrorf("Objective", "unknown objective %v", c.Objective)
	}

	if c.K < 0 {
		return paramErrorf("K", "k=%d must be >= 0", c.K)
	}
	if c.NBasis < 0 {
		return paramErrorf("NBasis", "n_basis=%d must be > 0 (or 0 for default)", c.NBasis)
	}
	if c.Workers < 0 {
		return paramErrorf("Workers", "workers=%d must be >= 0", c.Workers)
	}
	if c.MaxIter <= 0 {
		return paramErrorf("MaxIter", "max_iter=%d must be > 0", c.MaxIter)
	}
	if !(c.DiffThreshold > 0) || math.IsInf(c.DiffThreshold, 0) {
		return paramErrorf("DiffThreshold", "threshold=%g must be finite and > 0", c.DiffThreshold)
	}
	if c.MaxExhaustiveRank <= 0 || c.MaxExhaustiveRank > maxExhaustiveRankLimit {
		return paramErrorf("MaxExhaustiveRank", "%d not in [1,%d]", c.MaxExhaustiveRank, maxExhaustiveRankLimit)
	}
	if c.Algo == ExhaustiveRowRefine && c.K > c.MaxExhaustiveRank {
		return paramErrorf("K", "k=%d exceeds MaxExhaustiveRank=%d", c.K, c.MaxExhaustiveRank)
	}

	units := []struct {
		name string
		v    float64
	}{{"Tau", c.Tau}, {"WFP", c.WFP}, {"P", c.P}, {"Tol", c.Tol}}
	for _, u := range units {
		if err := binmat.ValidateUnit(u.name, u.v); err != nil {
			return fmt.Errorf("bmf.Config: %w", err)
		}
	}
	if !math.IsNaN(c.WFN) {
		if err := binmat.ValidateUnit("WFN", c.WFN); err != nil {
			return fmt.Errorf("bmf.Config: %w", err)
		}
	}
	if !math.IsNaN(c.W) {
		if err := binmat.ValidateUnit("W", c.W); err != nil {
			return fmt.Errorf("bmf.Config: %w", err)
		}
	}
	for i, w := range c.WList {
		if err := binmat.ValidateUnit(fmt.Sprintf("WList[%d]", i), w); err != nil {
			return fmt.Errorf("bmf.Config: %w", err)
		}
	}
	if !math.IsNaN(c.W) && len(c.WList) > 0 && c.W != c.WList[0] {
		return paramErrorf("W", "w=%g conflicts with WList[0]=%g", c.W, c.WList[0])
	}

	return nil
}
