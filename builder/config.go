// SPDX-License-Identifier: MIT
// Package: lvfusion/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • rng         = nil             (pure/deterministic unless seeded)
//   • smoothness  = 1.0             (pairwise weight)
//   • truncation  = 0               (Potts pairwise; >0 selects truncated linear)
//   • dataWeight  = 1.0             (unary weight)
//   • noise       = 0               (no corrupted pixels)
//   • higherOrder = 0               (no 2×2 block factors)
//   • conn        = gridgraph.Conn4
//   • energyFn    = UniformEnergyFn(0, 9) (integer table entries)

package builder

import (
	"math/rand"

	"github.com/katalvlaran/lvfusion/gridgraph"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors.
type builderConfig struct {
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand

	smoothness  float64 // ≥0, pairwise weight
	truncation  float64 // ≥0, 0 means Potts
	dataWeight  float64 // ≥0, unary weight
	noise       float64 // [0,1], pixel flip probability
	higherOrder float64 // ≥0, 2×2 block Potts weight
	conn        gridgraph.Connectivity

	// Generator for random table entries.
	energyFn EnergyFn
}

// Deterministic defaults (named, no magic numbers).
const (
	defaultSmoothness = 1.0
	defaultDataWeight = 1.0
	defaultEnergyMin  = 0
	defaultEnergyMax  = 9
)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order (later overrides earlier).
// Complexity: O(len(opts)).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		smoothness: defaultSmoothness,
		dataWeight: defaultDataWeight,
		conn:       gridgraph.Conn4,
		energyFn:   UniformEnergyFn(defaultEnergyMin, defaultEnergyMax),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
