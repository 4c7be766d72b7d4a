// SPDX-License-Identifier: MIT
// Package: lvfusion/builder
//
// impl_random.go - implementation of RandomHigherOrder(n, labels, factors, order).
//
// Canonical model:
//   - One random unary per variable, entries from cfg.energyFn.
//   - `factors` dense tables over `order` distinct variables drawn with
//     rng.Perm; entries from cfg.energyFn.
//
// Contract:
//   - n ≥ 1, labels ≥ 1, factors ≥ 0, 1 ≤ order ≤ n (else ErrTooFewVariables).
//   - order above the model cap surfaces model.ErrOrderExceeded.
//   - labels^order above MaxTableEntries ⇒ ErrTableTooLarge, before any
//     allocation.
//   - cfg.rng must be non-nil (else ErrNeedRandSource).
//
// Determinism: fixed draw order (unaries by variable, then tables by factor,
// variables before entries).

package builder

import (
	"fmt"

	"github.com/katalvlaran/lvfusion/model"
)

const (
	methodRandomHigherOrder = "RandomHigherOrder"
	minRandomVars           = 1
	minRandomOrder          = 1
)

// RandomHigherOrder returns a Constructor sampling a random model with
// unaries and dense tables of the given order.
func RandomHigherOrder(n, labels, factors, order int) Constructor {
	return func(cfg builderConfig) (*model.Model, error) {
		if err := validateMin(methodRandomHigherOrder, n, minRandomVars); err != nil {
			return nil, err
		}
		if err := validateLabels(methodRandomHigherOrder, labels, 1); err != nil {
			return nil, err
		}
		if err := validateMin(methodRandomHigherOrder, factors, 0); err != nil {
			return nil, err
		}
		if err := validateMin(methodRandomHigherOrder, order, minRandomOrder); err != nil {
			return nil, err
		}
		if order > n {
			return nil, builderErrorf(methodRandomHigherOrder, ErrTooFewVariables, "order=%d > n=%d", order, n)
		}
		size, err := validateTableSize(methodRandomHigherOrder, labels, order)
		if err != nil {
			return nil, err
		}
		if cfg.rng == nil {
			return nil, builderErrorf(methodRandomHigherOrder, ErrNeedRandSource, "no rng")
		}
		m, err := model.NewUniformModel(n, labels)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodRandomHigherOrder, err)
		}
		rng := cfg.rng

		for i := 0; i < n; i++ {
			u := make(model.Unary, labels)
			for l := range u {
				u[l] = cfg.energyFn(rng)
			}
			if _, err = m.AddFactor([]int{i}, u); err != nil {
				return nil, fmt.Errorf("%s: unary %d: %w", methodRandomHigherOrder, i, err)
			}
		}

		shape := make([]int, order)
		for j := range shape {
			shape[j] = labels
		}
		for f := 0; f < factors; f++ {
			vars := rng.Perm(n)[:order]
			values := make([]float64, size)
			for j := range values {
				values[j] = cfg.energyFn(rng)
			}
			table, err := model.NewTable(shape, values)
			if err != nil {
				return nil, fmt.Errorf("%s: factor %d: %w", methodRandomHigherOrder, f, err)
			}
			if _, err = m.AddFactor(vars, table); err != nil {
				return nil, fmt.Errorf("%s: factor %d: %w", methodRandomHigherOrder, f, err)
			}
		}

		return m, nil
	}
}
