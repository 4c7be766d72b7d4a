// SPDX-License-Identifier: MIT
// Package: lvfusion/builder
//
// options.go: functional options for the builder package.
//
// Contract:
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Constructors themselves never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithRand.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/lvfusion/gridgraph"
)

// BuilderOption customizes a constructor by mutating a builderConfig before
// model construction begins.
type BuilderOption func(*builderConfig)

// WithRand provides an explicit RNG for stochastic builders.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSmoothness sets the pairwise weight (≥0). Panics if w < 0.
func WithSmoothness(w float64) BuilderOption {
	if w < 0 {
		panic("builder: WithSmoothness(w<0)")
	}
	return func(c *builderConfig) {
		c.smoothness = w
	}
}

// WithTruncation switches pairwise factors from Potts to truncated linear
// with the given cap (>0). Panics if cap ≤ 0.
func WithTruncation(cap float64) BuilderOption {
	if cap <= 0 {
		panic("builder: WithTruncation(cap<=0)")
	}
	return func(c *builderConfig) {
		c.truncation = cap
	}
}

// WithDataWeight sets the unary weight (≥0). Panics if w < 0.
func WithDataWeight(w float64) BuilderOption {
	if w < 0 {
		panic("builder: WithDataWeight(w<0)")
	}
	return func(c *builderConfig) {
		c.dataWeight = w
	}
}

// WithNoise sets the probability that an observed pixel is replaced by a
// random label. Panics outside [0,1]. Noise draws are seeded by c.rng.
func WithNoise(p float64) BuilderOption {
	if p < 0 || p > 1 {
		panic("builder: WithNoise(p outside [0,1])")
	}
	return func(c *builderConfig) {
		c.noise = p
	}
}

// WithHigherOrder adds a Potts factor of weight w over every 2×2 block of
// grid models. Panics if w < 0; 0 disables the blocks.
func WithHigherOrder(w float64) BuilderOption {
	if w < 0 {
		panic("builder: WithHigherOrder(w<0)")
	}
	return func(c *builderConfig) {
		c.higherOrder = w
	}
}

// WithConnectivity selects the pairwise neighborhood of grid models.
func WithConnectivity(conn gridgraph.Connectivity) BuilderOption {
	return func(c *builderConfig) {
		c.conn = conn
	}
}

// WithEnergyFn overrides the generator of random table entries. Panics on nil.
func WithEnergyFn(fn EnergyFn) BuilderOption {
	if fn == nil {
		panic("builder: WithEnergyFn(nil)")
	}
	return func(c *builderConfig) {
		c.energyFn = fn
	}
}
