// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/boolmf/binmat"
	"github.com/katalvlaran/boolmf/bmf"
)

// fitFlags mirrors bmf.Config on the command line. Negative weights mean
// "unset".
type fitFlags struct {
	algo, init, objective string

	rank, nBasis, maxIter, workers, maxExhaustive int

	tau, wfp, wfn, w, p, tol, diff float64
	wList                          []float64
	seed                           int64

	remove, merge, refineOverlap, emptyBaseline bool

	input, synthetic string
	noise            float64
	transposed       bool
	verbose, show    bool
}

var ff fitFlags

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Factorize a binary matrix",
	Long: `Factorize a binary matrix read from --input (one row per line, 0/1
entries separated by spaces or commas, '#' starts a comment) or generated
with --synthetic m,n,k (k planted rectangles plus --noise bit flips).`,
	Example: `  boolmf fit --synthetic 60,40,3 --rank 3
  boolmf fit --input data.txt --algo asso-opt --rank 4 --wfp 0.4
  boolmf fit --synthetic 80,80,4 --algo lazy-update --w-list 0.3,0.5,0.7 --merge`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFit(cmd.OutOrStdout(), ff)
	},
}

func init() {
	f := fitCmd.Flags()
	f.StringVar(&ff.algo, "algo", bmf.GreedyAsso.String(), "asso | asso-iter | asso-opt | lazy-update")
	f.StringVar(&ff.init, "init", bmf.InitAsso.String(), "asso | random_rows | random_bits")
	f.StringVar(&ff.objective, "objective", bmf.ObjectiveCover.String(), "lazy-update objective: cover | dual")
	f.IntVarP(&ff.rank, "rank", "k", 0, "target rank (0 = until early stop)")
	f.IntVar(&ff.nBasis, "n-basis", 0, "candidate pool size (0 = input dimension)")
	f.IntVar(&ff.maxIter, "max-iter", bmf.DefaultMaxIter, "lazy-update pass cap")
	f.IntVar(&ff.workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	f.IntVar(&ff.maxExhaustive, "max-exhaustive-rank", bmf.DefaultMaxExhaustiveRank, "largest k for asso-opt")
	f.Float64Var(&ff.tau, "tau", bmf.DefaultTau, "association threshold")
	f.Float64Var(&ff.wfp, "wfp", bmf.DefaultWFP, "false-positive weight")
	f.Float64Var(&ff.wfn, "wfn", -1, "false-negative weight (default 1-wfp)")
	f.Float64Var(&ff.w, "w", -1, "cover weight for lazy-update")
	f.Float64SliceVar(&ff.wList, "w-list", nil, "per-slot cover weight trajectory")
	f.Float64Var(&ff.p, "p", bmf.DefaultP, "random_bits density")
	f.Float64Var(&ff.tol, "tol", 0, "stop once the error rate is below tol")
	f.Float64Var(&ff.diff, "diff-threshold", bmf.DefaultDiffThreshold, "slot convergence threshold")
	f.Int64Var(&ff.seed, "seed", 0, "random seed (0 = default)")
	f.BoolVar(&ff.remove, "remove", false, "drop patterns costlier than no pattern")
	f.BoolVar(&ff.merge, "merge", false, "merge overlapping patterns when cheaper")
	f.BoolVar(&ff.refineOverlap, "refine-overlap", false, "re-derive doubly overlapping patterns")
	f.BoolVar(&ff.emptyBaseline, "empty-baseline", false, "first rank competes against the empty prediction instead of 0")
	f.StringVarP(&ff.input, "input", "i", "", "path of a 0/1 text matrix")
	f.StringVar(&ff.synthetic, "synthetic", "", "generate m,n,k planted data")
	f.Float64Var(&ff.noise, "noise", 0.02, "bit-flip probability for --synthetic")
	f.BoolVar(&ff.transposed, "transposed", false, "factorize the transpose and swap factors back")
	f.BoolVarP(&ff.verbose, "verbose", "v", false, "log every record")
	f.BoolVar(&ff.show, "show", false, "print U and V")
}

// config translates flags into a bmf.Config.
func (f fitFlags) config(sink bmf.Sink) (bmf.Config, error) {
	algo, err := bmf.ParseAlgo(f.algo)
	if err != nil {
		return bmf.Config{}, err
	}
	method, err := bmf.ParseInitMethod(f.init)
	if err != nil {
		return bmf.Config{}, err
	}
	obj, err := bmf.ParseObjective(f.objective)
	if err != nil {
		return bmf.Config{}, err
	}

	opts := []bmf.Option{
		bmf.WithAlgo(algo),
		bmf.WithInitMethod(method),
		bmf.WithObjective(obj),
		bmf.WithRank(f.rank),
		bmf.WithNBasis(f.nBasis),
		bmf.WithMaxIter(f.maxIter),
		bmf.WithWorkers(f.workers),
		bmf.WithMaxExhaustiveRank(f.maxExhaustive),
		bmf.WithTau(f.tau),
		bmf.WithFalsePositiveWeight(f.wfp),
		bmf.WithDensity(f.p),
		bmf.WithTol(f.tol),
		bmf.WithDiffThreshold(f.diff),
		bmf.WithSeed(f.seed),
		bmf.WithRemove(f.remove),
		bmf.WithMerge(f.merge),
		bmf.WithRefineOverlap(f.refineOverlap),
		bmf.WithEmptyBaseline(f.emptyBaseline),
		bmf.WithSink(sink),
	}
	if f.wfn >= 0 {
		opts = append(opts, bmf.WithWeights(f.wfp, f.wfn))
	}
	if f.w >= 0 {
		opts = append(opts, bmf.WithCoverWeight(f.w))
	}
	if len(f.wList) > 0 {
		opts = append(opts, bmf.WithWeightSchedule(f.wList...))
	}
	cfg := bmf.NewConfig(opts...)

	return cfg, cfg.Validate()
}

// load reads or generates the input matrix.
func (f fitFlags) load() (*binmat.Matrix, error) {
	switch {
	case f.input != "" && f.synthetic != "":
		return nil, fmt.Errorf("--input and --synthetic are mutually exclusive")
	case f.input != "":
		file, err := os.Open(f.input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		return readMatrix(file)
	case f.synthetic != "":
		m, n, k, err := parseShape(f.synthetic)
		if err != nil {
			return nil, err
		}
		return planted(m, n, k, f.noise, f.seed)
	default:
		return nil, fmt.Errorf("one of --input or --synthetic is required")
	}
}

// newLogger returns a development logger when verbose, else a no-op one.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	return zap.NewDevelopment()
}

// runFit loads X, fits it and renders the per-rank table to w.
func runFit(w io.Writer, f fitFlags) error {
	log, err := newLogger(f.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	mem := &bmf.MemorySink{}
	cfg, err := f.config(teeSink{mem, bmf.NewZapSink(log)})
	if err != nil {
		return err
	}
	X, err := f.load()
	if err != nil {
		return err
	}
	m, n := X.Dims()
	log.Info("input loaded", zap.Int("rows", m), zap.Int("cols", n), zap.Int("ones", X.Count()))

	fit := bmf.Fit
	if f.transposed {
		fit = bmf.FitTransposed
	}
	res, err := fit(X, cfg)
	if err != nil {
		return err
	}

	renderRanks(w, mem.Ranks())
	fmt.Fprintf(w, "\nsession %s  algo %s  status %s (%s)\n", res.Session, res.Algo, res.Status, res.Reason)
	fmt.Fprintf(w, "rank %d  score %.2f  error %.4f  f1 %.4f\n",
		res.Factorization.Rank(), res.BestScore, errorRate(res), res.Metrics.F1)
	if res.Engine != nil {
		fmt.Fprintf(w, "passes %d  slots %d\n", res.Iterations, res.Engine.Slots())
	}
	if f.show {
		fmt.Fprintf(w, "\nU:\n%s\nV:\n%s", res.Factorization.U, res.Factorization.V)
	}

	return nil
}

// errorRate derives (FP+FN)/(m·n) from the result metrics.
func errorRate(res *bmf.Result) float64 {
	c := res.Metrics.Counts
	total := c.TP + c.FP + c.FN + c.TN
	if total == 0 {
		return math.NaN()
	}

	return float64(c.FP+c.FN) / float64(total)
}

// renderRanks prints one table row per rank record.
func renderRanks(w io.Writer, recs []bmf.RankRecord) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Phase", "Rank", "Score", "TP", "FP", "FN", "Precision", "Recall", "F1", "Rows", "Cols"})
	for _, r := range recs {
		table.Append([]string{
			r.Phase,
			strconv.Itoa(r.Rank),
			strconv.FormatFloat(r.Score, 'f', 2, 64),
			strconv.Itoa(r.Metrics.TP),
			strconv.Itoa(r.Metrics.FP),
			strconv.Itoa(r.Metrics.FN),
			strconv.FormatFloat(r.Metrics.Precision, 'f', 3, 64),
			strconv.FormatFloat(r.Metrics.Recall, 'f', 3, 64),
			strconv.FormatFloat(r.Metrics.F1, 'f', 3, 64),
			strconv.Itoa(r.RowPop),
			strconv.Itoa(r.ColPop),
		})
	}
	table.Render()
}

// teeSink forwards every record to each sink in order.
type teeSink []bmf.Sink

func (t teeSink) Rank(r bmf.RankRecord) {
	for _, s := range t {
		s.Rank(r)
	}
}

func (t teeSink) Iteration(r bmf.IterationRecord) {
	for _, s := range t {
		s.Iteration(r)
	}
}
