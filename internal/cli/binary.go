package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvfusion/binary"
	"github.com/katalvlaran/lvfusion/config"
	"github.com/katalvlaran/lvfusion/expansion"
	"github.com/katalvlaran/lvfusion/flow"
	"github.com/katalvlaran/lvfusion/pbf"
)

// newBinaryCmd creates the binary command: a single binary solve of a
// two-label model, without any move loop.
func newBinaryCmd() *cobra.Command {
	opts := runOpts{file: config.Default()}
	opts.file.Model.Labels = 2

	cmd := &cobra.Command{
		Use:     "binary",
		Short:   "Minimize a two-label model in one binary solve",
		Example: `  lvfusion binary --model denoise --higher-order 1 --noise 0.1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runBinary(cmd.Context(), cmd, f)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML or YAML run file")
	opts.bindSolverFlags(cmd.Flags())
	opts.bindModelFlags(cmd.Flags())

	return cmd
}

func runBinary(ctx context.Context, cmd *cobra.Command, f config.File) error {
	logger := loggerFromContext(ctx)

	kind, err := binary.ParseKind(f.Solver.Binary)
	if err != nil {
		return err
	}
	reduction, err := pbf.ParseReduction(f.Solver.Reduction)
	if err != nil {
		return err
	}
	algorithm, err := flow.ParseAlgorithm(f.Solver.Flow)
	if err != nil {
		return err
	}
	bp := expansion.DefaultBinaryParameter()
	bp.Solver.Kind = kind
	bp.Solver.Reduction = reduction
	bp.Solver.Flow.Algorithm = algorithm
	bp.Solver.Flow.Logger = logger

	prob, err := f.Model.Build()
	if err != nil {
		return err
	}
	prog := newProgress(logger)
	labels, err := expansion.SolveBinary(ctx, prob.Model, bp)
	if err != nil {
		return err
	}
	energy := prob.Model.Evaluate(labels)
	prog.done("solved", "solver", kind, "energy", energy)

	out := cmd.OutOrStdout()
	pairs := [][2]string{{"solver", kind.String()}, {"energy", fmt.Sprintf("%g", energy)}}
	if prob.Observed != nil {
		pairs = append(pairs, [2]string{"observed", fmt.Sprintf("%g", prob.Model.Evaluate(prob.Observed))})
	}
	fmt.Fprintln(out, renderSummary(pairs...))
	if prob.Grid == nil {
		fmt.Fprintln(out, renderLabeling(labels))
		return nil
	}
	observed, err := prob.Grid.Rows(prob.Observed)
	if err != nil {
		return err
	}
	result, err := prob.Grid.Rows(labels)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderPanels(panel{"observed", observed}, panel{"labeling", result}))

	return nil
}
