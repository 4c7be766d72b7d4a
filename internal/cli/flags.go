package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvfusion/config"
)

// runOpts holds the flags shared by solve and binary. Values start from
// config.Default; a flag only overrides the file when it was set explicitly.
type runOpts struct {
	configPath string
	file       config.File
}

// bindModelFlags registers the [model] flags on cmd.
func (o *runOpts) bindModelFlags(fs *pflag.FlagSet) {
	m := &o.file.Model
	fs.StringVar(&m.Kind, "model", m.Kind, "model generator: chain, denoise or random")
	fs.IntVar(&m.Variables, "variables", m.Variables, "number of variables (chain, random)")
	fs.IntVar(&m.Labels, "labels", m.Labels, "labels per variable")
	fs.IntVar(&m.Width, "width", m.Width, "image width (denoise)")
	fs.IntVar(&m.Height, "height", m.Height, "image height (denoise)")
	fs.IntVar(&m.Factors, "factors", m.Factors, "number of random tables (random)")
	fs.IntVar(&m.Order, "factor-order", m.Order, "order of random tables (random)")
	fs.Int64Var(&m.Seed, "seed", m.Seed, "generator seed")
	fs.Float64Var(&m.Noise, "noise", m.Noise, "pixel corruption probability (denoise)")
	fs.Float64Var(&m.Smoothness, "smoothness", m.Smoothness, "pairwise weight (0 = default)")
	fs.Float64Var(&m.Truncation, "truncation", m.Truncation, "truncated-linear cap (0 = Potts)")
	fs.Float64Var(&m.DataWeight, "data-weight", m.DataWeight, "unary weight (0 = default)")
	fs.Float64Var(&m.HigherOrder, "higher-order", m.HigherOrder, "2x2 block Potts weight (denoise)")
	fs.IntVar(&m.Connectivity, "connectivity", m.Connectivity, "grid connectivity: 4 or 8 (denoise)")
}

// bindSolverFlags registers the flags of the binary solver shared by both commands.
func (o *runOpts) bindSolverFlags(fs *pflag.FlagSet) {
	s := &o.file.Solver
	fs.StringVar(&s.Reduction, "reduction", s.Reduction, "higher-order reduction: pairwise or chen")
	fs.StringVar(&s.Binary, "binary", s.Binary, "binary solver: qpbo or exhaustive")
	fs.StringVar(&s.Flow, "flow", s.Flow, "max-flow algorithm: dinic, edmonds-karp or ford-fulkerson")
}

// resolve loads --config (if any) and re-applies every explicitly set flag
// on top of it. Flag values are bound to o.file, so they are captured as
// strings before the file overwrites them.
func (o *runOpts) resolve(cmd *cobra.Command) (config.File, error) {
	if o.configPath == "" {
		return o.file, nil
	}
	var replay []func() error
	cmd.Flags().Visit(func(fl *pflag.Flag) {
		if sv, ok := fl.Value.(pflag.SliceValue); ok {
			items := sv.GetSlice()
			replay = append(replay, func() error { return sv.Replace(items) })
			return
		}
		value := fl.Value.String()
		replay = append(replay, func() error { return fl.Value.Set(value) })
	})
	f, err := config.Load(o.configPath)
	if err != nil {
		return config.File{}, err
	}
	o.file = f
	for _, set := range replay {
		if err = set(); err != nil {
			return config.File{}, err
		}
	}

	return o.file, nil
}
