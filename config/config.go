// Package config loads solver runs from TOML or YAML files.
//
// A file has two sections: [solver] mirrors expansion.Parameter by name, and
// [model] selects one of the synthetic generators of package builder.
//
//	[solver]
//	max_iterations = 200
//	initialization = "LOCALOPT"
//	label_order = "RANDOM"
//	seed_order = 7
//	reduction = "chen"
//	binary = "qpbo"
//	flow = "dinic"
//	workers = 4
//
//	[model]
//	kind = "denoise"
//	width = 16
//	height = 8
//	labels = 3
//	noise = 0.15
//	seed = 1
//
// Absent keys keep the values of Default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvfusion/binary"
	"github.com/katalvlaran/lvfusion/expansion"
	"github.com/katalvlaran/lvfusion/flow"
	"github.com/katalvlaran/lvfusion/pbf"
)

var (
	// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalid is returned when a value cannot be mapped onto a parameter.
	ErrInvalid = errors.New("config: invalid value")
)

// Format is the encoding of a configuration file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// File is the decoded content of a configuration file.
type File struct {
	Solver Solver `toml:"solver" yaml:"solver"`
	Model  Model  `toml:"model" yaml:"model"`
}

// Solver holds the [solver] section. Enumerations are kept as names and
// resolved by Parameter.
type Solver struct {
	MaxIterations  int    `toml:"max_iterations" yaml:"max_iterations"`
	Initialization string `toml:"initialization" yaml:"initialization"`
	SeedLabels     uint64 `toml:"seed_labels" yaml:"seed_labels"`
	Labeling       []int  `toml:"labeling" yaml:"labeling"`
	LabelOrder     string `toml:"label_order" yaml:"label_order"`
	SeedOrder      uint64 `toml:"seed_order" yaml:"seed_order"`
	Order          []int  `toml:"order" yaml:"order"`
	Reduction      string `toml:"reduction" yaml:"reduction"`
	Binary         string `toml:"binary" yaml:"binary"`
	Flow           string `toml:"flow" yaml:"flow"`
	Workers        int    `toml:"workers" yaml:"workers"`
}

// Default returns the configuration equivalent to expansion.DefaultParameter
// and a 16×8 three-label denoising model.
func Default() File {
	p := expansion.DefaultParameter()

	return File{
		Solver: Solver{
			MaxIterations:  p.MaxIterations,
			Initialization: p.Initialization.String(),
			LabelOrder:     p.LabelOrder.String(),
			Reduction:      p.Reduction.String(),
			Binary:         p.Solver.String(),
			Flow:           p.FlowAlgorithm.String(),
			Workers:        p.Workers,
		},
		Model: DefaultModel(),
	}
}

// Load reads path, choosing the decoder by extension (.toml, .yaml, .yml),
// over the values of Default.
func Load(path string) (File, error) {
	var format Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		format = FormatTOML
	case ".yaml", ".yml":
		format = FormatYAML
	default:
		return File{}, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	f, err := Decode(data, format)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Decode parses data in the given format over the values of Default.
func Decode(data []byte, format Format) (File, error) {
	f := Default()
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return File{}, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, err
		}
	default:
		return File{}, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	return f, nil
}

// Parameter resolves the [solver] section. The logger is left nil.
func (f File) Parameter() (expansion.Parameter, error) {
	s := f.Solver
	p := expansion.DefaultParameter()
	var err error

	p.MaxIterations = s.MaxIterations
	if p.Initialization, err = expansion.ParseInitialization(s.Initialization); err != nil {
		return p, fmt.Errorf("initialization: %w", err)
	}
	if p.LabelOrder, err = expansion.ParseLabelOrder(s.LabelOrder); err != nil {
		return p, fmt.Errorf("label_order: %w", err)
	}
	if p.Reduction, err = pbf.ParseReduction(s.Reduction); err != nil {
		return p, fmt.Errorf("reduction: %w", err)
	}
	if p.Solver, err = binary.ParseKind(s.Binary); err != nil {
		return p, fmt.Errorf("binary: %w", err)
	}
	if p.FlowAlgorithm, err = flow.ParseAlgorithm(s.Flow); err != nil {
		return p, fmt.Errorf("flow: %w", err)
	}
	if s.Workers < 0 {
		return p, fmt.Errorf("workers=%d: %w", s.Workers, ErrInvalid)
	}
	if s.Workers > 0 {
		p.Workers = s.Workers
	}
	p.RandomSeedForLabels = s.SeedLabels
	p.RandomSeedForOrder = s.SeedOrder
	p.ExplicitLabeling = append([]int(nil), s.Labeling...)
	p.ExplicitLabelOrder = append([]int(nil), s.Order...)

	return p, nil
}
