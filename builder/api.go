// SPDX-License-Identifier: MIT
// Package: lvfusion/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract:
//   - One orchestrator: Build(c, opts...). Resolves cfg, runs c once.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same inputs/options/seed ⇒ identical models.
//   - Safety: constructors never panic; they return sentinel errors.

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvfusion/model"
)

// Constructor creates a model from the resolved builderConfig. Constructors
// validate parameters early, return sentinel errors, and register factors in
// a stable, documented order.
type Constructor func(cfg builderConfig) (*model.Model, error)

// Build resolves the builder configuration from opts and runs c.
// Constructor errors are wrapped with "Build: %w".
//
// Complexity: O(len(opts)) plus the cost of c.
func Build(c Constructor, opts ...BuilderOption) (*model.Model, error) {
	if c == nil {
		return nil, fmt.Errorf("Build: nil constructor: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(opts...)
	m, err := c(cfg)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	return m, nil
}

// =============================================================================
// Model factories (declarations) - implemented in impl_*.go
// =============================================================================

// Chain builds n variables on a line pulled toward a linear ramp of labels.
// Complexity: O(n·labels).
//func Chain(n, labels int) Constructor

// Denoise builds the grid model of an observed image.
// Complexity: O(W·H·(labels + d)) plus 2×2 blocks when enabled.
//func Denoise(observed [][]int, labels int) Constructor

// RandomHigherOrder builds random dense tables of the given order.
// Requires cfg.rng. Complexity: O(n·labels + factors·labels^order).
//func RandomHigherOrder(n, labels, factors, order int) Constructor

// pairwise returns the smoothness function selected by cfg.
func (c builderConfig) pairwise() model.Function {
	if c.truncation > 0 {
		return model.TruncatedLinear{Weight: c.smoothness, Cap: c.truncation}
	}

	return model.Potts{Weight: c.smoothness}
}
