package expansion

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvfusion/binary"
	"github.com/katalvlaran/lvfusion/model"
)

// BinaryParameter configures SolveBinary.
type BinaryParameter struct {
	Solver binary.Config
}

// DefaultBinaryParameter returns QPBO with the default reduction.
func DefaultBinaryParameter() BinaryParameter {
	return BinaryParameter{Solver: binary.DefaultConfig()}
}

// SolveBinary minimizes a model whose variables have at most two labels in a
// single binary solve: every factor table is handed to the solver as is, with
// x_i = label of variable i.
//
// Returns ErrUnsupportedLabelCount when some variable has more than two
// labels, model.ErrOrderExceeded for factors beyond the order cap.
//
// Steps:
//  1. Check label counts and factor orders.
//  2. For every factor of order k, tabulate its 2^k values (single-label
//     variables fixed at 0) and add the table as one clique.
//  3. Solve and read the labels.
//
// Complexity: O(Σ_f 2^k_f·eval) plus the solver.
func SolveBinary(ctx context.Context, m model.EnergyModel, p BinaryParameter) ([]int, error) {
	n := m.NumVariables()
	for i := 0; i < n; i++ {
		if m.NumLabels(i) > 2 {
			return nil, fmt.Errorf("variable %d has %d labels: %w", i, m.NumLabels(i), ErrUnsupportedLabelCount)
		}
	}
	maxOrder := model.DefaultMaxOrder
	if c, ok := m.(orderCapped); ok {
		maxOrder = c.MaxOrder()
	}
	if k := model.MaxArity(m); k > maxOrder {
		return nil, fmt.Errorf("factor of order %d, cap %d: %w", k, maxOrder, model.ErrOrderExceeded)
	}

	sv, err := binary.New(n, p.Solver)
	if err != nil {
		return nil, err
	}
	var (
		labels []int
		table  []float64
	)
	for f := 0; f < m.NumFactors(); f++ {
		vars := m.FactorVariables(f)
		k := len(vars)
		if k == 0 {
			if err = sv.AddTerm(m.FactorEnergy(f, nil)); err != nil {
				return nil, err
			}
			continue
		}
		labels = append(labels[:0], make([]int, k)...)
		table = append(table[:0], make([]float64, 1<<k)...)
		for a := range table {
			valid := true
			for j, v := range vars {
				labels[j] = (a >> j) & 1
				if labels[j] >= m.NumLabels(v) {
					valid = false
				}
			}
			if valid {
				table[a] = m.FactorEnergy(f, labels)
			} else {
				table[a] = table[a&^singleLabelMask(m, vars)]
			}
		}
		if err = sv.AddClique(vars, table); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		if m.NumLabels(i) == 1 {
			// pin single-label variables to 0
			if err = sv.AddUnaryTerm(i, 0, 1); err != nil {
				return nil, err
			}
		}
	}
	if err = sv.Solve(ctx); err != nil {
		return nil, err
	}

	out := make([]int, n)
	for i := range out {
		out[i] = sv.Label(i)
	}

	return out, nil
}

// singleLabelMask returns the positions of vars whose variable has one label.
func singleLabelMask(m model.EnergyModel, vars []int) int {
	mask := 0
	for j, v := range vars {
		if m.NumLabels(v) < 2 {
			mask |= 1 << j
		}
	}

	return mask
}
