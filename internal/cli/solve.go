package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfusion/config"
	"github.com/katalvlaran/lvfusion/expansion"
)

// solveOpts holds the flags of the solve command beyond the shared ones.
type solveOpts struct {
	runOpts
	every        int           // log every n-th step at info level
	timeLimit    time.Duration // stop after this long (0 = no limit)
	fromObserved bool          // start from the observed image (denoise)
}

// newSolveCmd creates the solve command: generate a model and run
// alpha-expansion on it.
func newSolveCmd() *cobra.Command {
	opts := solveOpts{runOpts: runOpts{file: config.Default()}}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run alpha-expansion on a generated model",
		Example: `  lvfusion solve --model denoise --width 24 --height 10 --noise 0.2
  lvfusion solve --config run.toml --workers 4 -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runSolve(cmd.Context(), cmd, f, &opts)
		},
	}

	fs := cmd.Flags()
	s := &opts.file.Solver
	fs.StringVarP(&opts.configPath, "config", "c", "", "TOML or YAML run file")
	fs.IntVar(&s.MaxIterations, "max-iterations", s.MaxIterations, "step budget")
	fs.StringVar(&s.Initialization, "init", s.Initialization, "initial labeling: DEFAULT, RANDOM, LOCALOPT or EXPLICIT")
	fs.Uint64Var(&s.SeedLabels, "seed-labels", s.SeedLabels, "seed of RANDOM initialization")
	fs.StringVar(&s.LabelOrder, "label-order", s.LabelOrder, "candidate order: DEFAULT, RANDOM or EXPLICIT")
	fs.Uint64Var(&s.SeedOrder, "seed-order", s.SeedOrder, "seed of RANDOM label order")
	fs.IntSliceVar(&s.Order, "order", s.Order, "EXPLICIT label order")
	fs.IntVar(&s.Workers, "workers", s.Workers, "parallel clique reduction workers")
	fs.IntVar(&opts.every, "every", 1, "log every n-th step")
	fs.DurationVar(&opts.timeLimit, "time-limit", 0, "stop the run after this duration")
	fs.BoolVar(&opts.fromObserved, "from-observed", false, "start from the observed image (denoise models)")
	opts.bindSolverFlags(fs)
	opts.bindModelFlags(fs)

	return cmd
}

func runSolve(ctx context.Context, cmd *cobra.Command, f config.File, opts *solveOpts) error {
	logger := loggerFromContext(ctx)

	p, err := f.Parameter()
	if err != nil {
		return err
	}
	p.Logger = logger

	prog := newProgress(logger)
	prob, err := f.Model.Build()
	if err != nil {
		return err
	}
	prog.done("model built",
		"kind", f.Model.Kind,
		"variables", prob.Model.NumVariables(),
		"factors", prob.Model.NumFactors(),
	)

	if opts.fromObserved {
		if prob.Observed == nil {
			return fmt.Errorf("--from-observed needs a denoise model, got %q", f.Model.Kind)
		}
		p.Initialization = expansion.InitExplicit
		p.ExplicitLabeling = prob.Observed
	}

	e, err := expansion.New(prob.Model, p)
	if err != nil {
		return err
	}
	start := e.Energy()
	timing := &expansion.TimingVisitor{Limit: opts.timeLimit}
	visitor := expansion.Visitors{expansion.LogVisitor{Logger: logger, Every: opts.every}, timing}

	prog = newProgress(logger)
	state, err := e.Infer(ctx, visitor)
	if err != nil {
		return err
	}
	prog.done("solved", "state", state)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderSummary(
		[2]string{"algorithm", e.Name()},
		[2]string{"state", state.String()},
		[2]string{"steps", strconv.Itoa(e.Iterations())},
		[2]string{"energy", fmt.Sprintf("%g → %g", start, e.Energy())},
	))
	if prob.Grid == nil {
		fmt.Fprintln(out, renderLabeling(e.Labeling()))
		return nil
	}
	observed, err := prob.Grid.Rows(prob.Observed)
	if err != nil {
		return err
	}
	result, err := prob.Grid.Rows(e.Labeling())
	if err != nil {
		return err
	}
	segments, err := prob.Grid.Segments(e.Labeling())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderSummary([2]string{"segments", strconv.Itoa(len(segments))}))
	fmt.Fprintln(out, renderPanels(panel{"observed", observed}, panel{"labeling", result}))

	return nil
}
