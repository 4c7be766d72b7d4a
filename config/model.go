package config

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvfusion/builder"
	"github.com/katalvlaran/lvfusion/gridgraph"
	"github.com/katalvlaran/lvfusion/model"
)

// Model kinds.
const (
	KindChain   = "chain"
	KindDenoise = "denoise"
	KindRandom  = "random"
)

// Model holds the [model] section: which generator to run and its knobs.
// Knobs that do not apply to Kind are ignored; zero weights and truncation
// keep the builder defaults.
type Model struct {
	Kind         string  `toml:"kind" yaml:"kind"`
	Variables    int     `toml:"variables" yaml:"variables"`
	Labels       int     `toml:"labels" yaml:"labels"`
	Width        int     `toml:"width" yaml:"width"`
	Height       int     `toml:"height" yaml:"height"`
	Factors      int     `toml:"factors" yaml:"factors"`
	Order        int     `toml:"order" yaml:"order"`
	Seed         int64   `toml:"seed" yaml:"seed"`
	Noise        float64 `toml:"noise" yaml:"noise"`
	Smoothness   float64 `toml:"smoothness" yaml:"smoothness"`
	Truncation   float64 `toml:"truncation" yaml:"truncation"`
	DataWeight   float64 `toml:"data_weight" yaml:"data_weight"`
	HigherOrder  float64 `toml:"higher_order" yaml:"higher_order"`
	Connectivity int     `toml:"connectivity" yaml:"connectivity"`
}

// DefaultModel is a 16×8 three-label stripe image with 15% noise.
func DefaultModel() Model {
	return Model{
		Kind:         KindDenoise,
		Variables:    32,
		Labels:       3,
		Width:        16,
		Height:       8,
		Factors:      32,
		Order:        3,
		Seed:         1,
		Noise:        0.15,
		Connectivity: 4,
	}
}

// Problem is a generated model together with its grid layout and the
// observation it was built from. Grid and Observed are nil unless the model
// is a denoising grid.
type Problem struct {
	Model    *model.Model
	Grid     *gridgraph.GridGraph
	Observed []int
}

// Build runs the generator selected by Kind.
func (m Model) Build() (*Problem, error) {
	opts, err := m.options()
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(strings.TrimSpace(m.Kind)) {
	case KindChain:
		mod, err := builder.Build(builder.Chain(m.Variables, m.Labels), opts...)
		if err != nil {
			return nil, err
		}

		return &Problem{Model: mod}, nil

	case KindRandom:
		mod, err := builder.Build(builder.RandomHigherOrder(m.Variables, m.Labels, m.Factors, m.Order), opts...)
		if err != nil {
			return nil, err
		}

		return &Problem{Model: mod}, nil

	case "", KindDenoise:
		clean := builder.StripeImage(m.Width, m.Height, m.Labels)
		if clean == nil {
			return nil, fmt.Errorf("image %dx%d with %d labels: %w", m.Width, m.Height, m.Labels, ErrInvalid)
		}
		noisy, err := builder.Corrupt(clean, m.Labels, opts...)
		if err != nil {
			return nil, err
		}
		mod, err := builder.Build(builder.Denoise(noisy, m.Labels), opts...)
		if err != nil {
			return nil, err
		}
		gg, observed, err := gridgraph.FromRows(noisy, m.connectivity())
		if err != nil {
			return nil, err
		}

		return &Problem{Model: mod, Grid: gg, Observed: observed}, nil

	default:
		return nil, fmt.Errorf("model kind %q: %w", m.Kind, ErrInvalid)
	}
}

func (m Model) connectivity() gridgraph.Connectivity {
	if m.Connectivity == 8 {
		return gridgraph.Conn8
	}

	return gridgraph.Conn4
}

// options maps the knobs onto builder options. Out-of-range values are
// reported as ErrInvalid instead of reaching the panicking option constructors.
func (m Model) options() ([]builder.BuilderOption, error) {
	if m.Connectivity != 0 && m.Connectivity != 4 && m.Connectivity != 8 {
		return nil, fmt.Errorf("connectivity=%d: %w", m.Connectivity, ErrInvalid)
	}
	if m.Noise < 0 || m.Noise > 1 {
		return nil, fmt.Errorf("noise=%g: %w", m.Noise, ErrInvalid)
	}
	if m.Smoothness < 0 || m.Truncation < 0 || m.DataWeight < 0 || m.HigherOrder < 0 {
		return nil, fmt.Errorf("negative weight: %w", ErrInvalid)
	}

	opts := []builder.BuilderOption{
		builder.WithSeed(m.Seed),
		builder.WithNoise(m.Noise),
		builder.WithHigherOrder(m.HigherOrder),
		builder.WithConnectivity(m.connectivity()),
	}
	if m.Smoothness > 0 {
		opts = append(opts, builder.WithSmoothness(m.Smoothness))
	}
	if m.Truncation > 0 {
		opts = append(opts, builder.WithTruncation(m.Truncation))
	}
	if m.DataWeight > 0 {
		opts = append(opts, builder.WithDataWeight(m.DataWeight))
	}

	return opts, nil
}
