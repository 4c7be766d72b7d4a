// SPDX-License-Identifier: MIT
// Package: lvfusion/builder
//
// impl_chain.go - implementation of Chain(n, labels).
//
// Canonical model:
//   - Unary of variable i: dataWeight·|l − ramp(i)|, ramp(i) = round(i·(labels−1)/(n−1)).
//   - Pairwise (i, i+1): Potts or truncated linear per cfg.
//
// Determinism: factors are registered unaries first (i asc), then pairs (i asc).

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvfusion/model"
)

const (
	methodChain    = "Chain"
	minChainVars   = 1
	minChainLabels = 1
)

// Chain returns a Constructor for a deterministic chain model.
func Chain(n, labels int) Constructor {
	return func(cfg builderConfig) (*model.Model, error) {
		if err := validateMin(methodChain, n, minChainVars); err != nil {
			return nil, err
		}
		if err := validateLabels(methodChain, labels, minChainLabels); err != nil {
			return nil, err
		}
		m, err := model.NewUniformModel(n, labels)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodChain, err)
		}

		for i := 0; i < n; i++ {
			ramp := 0.0
			if n > 1 {
				ramp = math.Round(float64(i*(labels-1)) / float64(n-1))
			}
			u := make(model.Unary, labels)
			for l := range u {
				u[l] = cfg.dataWeight * math.Abs(float64(l)-ramp)
			}
			if _, err = m.AddFactor([]int{i}, u); err != nil {
				return nil, fmt.Errorf("%s: unary %d: %w", methodChain, i, err)
			}
		}
		pair := cfg.pairwise()
		for i := 0; i+1 < n; i++ {
			if _, err = m.AddFactor([]int{i, i + 1}, pair); err != nil {
				return nil, fmt.Errorf("%s: pair %d: %w", methodChain, i, err)
			}
		}

		return m, nil
	}
}
