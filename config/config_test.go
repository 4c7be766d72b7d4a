package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvfusion/binary"
	"github.com/katalvlaran/lvfusion/builder"
	"github.com/katalvlaran/lvfusion/config"
	"github.com/katalvlaran/lvfusion/expansion"
	"github.com/katalvlaran/lvfusion/flow"
	"github.com/katalvlaran/lvfusion/gridgraph"
	"github.com/katalvlaran/lvfusion/pbf"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigSuite) write(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (s *ConfigSuite) TestDefaultMatchesDefaultParameter() {
	p, err := config.Default().Parameter()
	s.Require().NoError(err)
	s.Equal(expansion.DefaultParameter(), p)
}

func (s *ConfigSuite) TestLoadTOML() {
	path := s.write("run.toml", `
[solver]
max_iterations = 200
initialization = "LOCALOPT"
label_order = "RANDOM"
seed_order = 7
reduction = "chen"
binary = "exhaustive"
flow = "edmonds-karp"
workers = 4

[model]
kind = "chain"
variables = 6
labels = 4
`)
	f, err := config.Load(path)
	s.Require().NoError(err)
	p, err := f.Parameter()
	s.Require().NoError(err)

	s.Equal(200, p.MaxIterations)
	s.Equal(expansion.InitLocalOptimal, p.Initialization)
	s.Equal(expansion.OrderRandom, p.LabelOrder)
	s.Equal(uint64(7), p.RandomSeedForOrder)
	s.Equal(pbf.ReductionChen, p.Reduction)
	s.Equal(binary.KindExhaustive, p.Solver)
	s.Equal(flow.EdmondsKarp, p.FlowAlgorithm)
	s.Equal(4, p.Workers)

	// untouched model keys keep their defaults
	s.Equal(config.KindChain, f.Model.Kind)
	s.Equal(6, f.Model.Variables)
	s.Equal(config.DefaultModel().Width, f.Model.Width)
}

func (s *ConfigSuite) TestLoadYAML() {
	path := s.write("run.yml", `
solver:
  initialization: EXPLICIT
  labeling: [0, 1, 2]
  label_order: EXPLICIT
  order: [2, 0, 1]
model:
  kind: random
  variables: 3
  labels: 3
  factors: 2
  order: 2
`)
	f, err := config.Load(path)
	s.Require().NoError(err)
	p, err := f.Parameter()
	s.Require().NoError(err)

	s.Equal(expansion.InitExplicit, p.Initialization)
	s.Equal([]int{0, 1, 2}, p.ExplicitLabeling)
	s.Equal([]int{2, 0, 1}, p.ExplicitLabelOrder)
	s.Equal(expansion.DefaultMaxIterations, p.MaxIterations)

	prob, err := f.Model.Build()
	s.Require().NoError(err)
	s.Nil(prob.Grid)
	s.Equal(3+2, prob.Model.NumFactors())

	e, err := expansion.New(prob.Model, p)
	s.Require().NoError(err)
	s.Equal([]int{2, 0, 1}, e.Schedule())
}

func (s *ConfigSuite) TestLoadErrors() {
	_, err := config.Load(s.write("run.json", `{}`))
	s.ErrorIs(err, config.ErrUnknownFormat)

	_, err = config.Load(filepath.Join(s.dir, "missing.toml"))
	s.ErrorIs(err, os.ErrNotExist)

	_, err = config.Load(s.write("bad.toml", "[solver\nworkers = 1"))
	s.Error(err)

	_, err = config.Decode([]byte("x"), config.Format("ini"))
	s.ErrorIs(err, config.ErrUnknownFormat)
}

func (s *ConfigSuite) TestParameterErrors() {
	cases := map[string]func(f *config.File){
		"initialization": func(f *config.File) { f.Solver.Initialization = "sometimes" },
		"label_order":    func(f *config.File) { f.Solver.LabelOrder = "reverse" },
		"reduction":      func(f *config.File) { f.Solver.Reduction = "ishikawa" },
		"binary":         func(f *config.File) { f.Solver.Binary = "trws" },
		"flow":           func(f *config.File) { f.Solver.Flow = "push-relabel" },
		"workers":        func(f *config.File) { f.Solver.Workers = -1 },
	}
	for name, mutate := range cases {
		f := config.Default()
		mutate(&f)
		_, err := f.Parameter()
		s.Errorf(err, "%s accepted", name)
	}
	f := config.Default()
	f.Solver.Workers = -1
	_, err := f.Parameter()
	s.ErrorIs(err, config.ErrInvalid)
}

func (s *ConfigSuite) TestDefaultModelBuildsGrid() {
	prob, err := config.DefaultModel().Build()
	s.Require().NoError(err)
	s.Require().NotNil(prob.Grid)
	s.Equal(16, prob.Grid.Width)
	s.Equal(8, prob.Grid.Height)
	s.Len(prob.Observed, 128)
	s.Equal(128, prob.Model.NumVariables())
}

func (s *ConfigSuite) TestModelBuildMatchesBuilder() {
	m := config.DefaultModel()
	m.Noise = 0
	m.Connectivity = 8
	prob, err := m.Build()
	s.Require().NoError(err)
	s.Equal(gridgraph.Conn8, prob.Grid.Conn)

	want, err := builder.Build(builder.Denoise(builder.StripeImage(16, 8, 3), 3),
		builder.WithConnectivity(gridgraph.Conn8))
	s.Require().NoError(err)
	s.Equal(want.NumFactors(), prob.Model.NumFactors())
	s.Equal(want.Evaluate(prob.Observed), prob.Model.Evaluate(prob.Observed))
}

func (s *ConfigSuite) TestModelErrors() {
	for name, m := range map[string]config.Model{
		"kind":         {Kind: "tree"},
		"connectivity": {Kind: config.KindDenoise, Width: 2, Height: 2, Labels: 2, Connectivity: 6},
		"noise":        {Kind: config.KindDenoise, Width: 2, Height: 2, Labels: 2, Noise: 2},
		"weight":       {Kind: config.KindChain, Variables: 2, Labels: 2, Smoothness: -1},
		"image":        {Kind: config.KindDenoise, Width: 0, Height: 2, Labels: 2},
	} {
		_, err := m.Build()
		s.ErrorIsf(err, config.ErrInvalid, "%s", name)
	}
	_, err := config.Model{Kind: config.KindChain, Variables: 0, Labels: 2}.Build()
	s.ErrorIs(err, builder.ErrTooFewVariables)
}
