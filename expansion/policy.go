package expansion

import (
	"fmt"

	"github.com/katalvlaran/lvfusion/model"
)

// initialLabeling applies the initialization policy of p to m.
//
// Returns ErrInvalidLabeling (wrapping the model validation error) when
// InitExplicit is selected with a malformed ExplicitLabeling.
//
// Complexity: O(n) for zero/random/explicit, O(n + Σ unary sizes) for local optimal.
func initialLabeling(m model.EnergyModel, p Parameter) ([]int, error) {
	n := m.NumVariables()
	labels := make([]int, n)

	switch p.Initialization {
	case InitZero:
	case InitRandom:
		rng := rngFromSeed(p.RandomSeedForLabels)
		for i := range labels {
			labels[i] = rng.Intn(m.NumLabels(i))
		}
	case InitLocalOptimal:
		localOptimal(m, labels)
	case InitExplicit:
		if err := model.ValidateLabeling(m, p.ExplicitLabeling); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidLabeling, err)
		}
		copy(labels, p.ExplicitLabeling)
	default:
		return nil, fmt.Errorf("%v: %w", p.Initialization, ErrUnknownInitialization)
	}

	return labels, nil
}

// localOptimal writes into labels the per-variable argmin of the summed
// unary factors. Ties go to the lowest label; variables without a unary
// factor keep label 0.
//
// Steps:
//  1. Accumulate every unary factor into a per-variable cost vector.
//  2. Pick the first minimum of each accumulated vector.
func localOptimal(m model.EnergyModel, labels []int) {
	costs := make(map[int][]float64)
	var buf [1]int
	for f := 0; f < m.NumFactors(); f++ {
		vars := m.FactorVariables(f)
		if len(vars) != 1 {
			continue
		}
		v := vars[0]
		c, ok := costs[v]
		if !ok {
			c = make([]float64, m.NumLabels(v))
			costs[v] = c
		}
		for l := range c {
			buf[0] = l
			c[l] += m.FactorEnergy(f, buf[:])
		}
	}
	for v, c := range costs {
		best := 0
		for l := 1; l < len(c); l++ {
			if c[l] < c[best] {
				best = l
			}
		}
		labels[v] = best
	}
}

// labelSchedule applies the label order policy of p for maxState labels.
//
// Returns ErrInvalidLabelOrder when OrderExplicit is selected and
// ExplicitLabelOrder is not a permutation of 0..maxState-1.
//
// Complexity: O(maxState).
func labelSchedule(maxState int, p Parameter) ([]int, error) {
	switch p.LabelOrder {
	case OrderIdentity:
		out := make([]int, maxState)
		for i := range out {
			out[i] = i
		}
		return out, nil
	case OrderRandom:
		return permutation(maxState, rngFromSeed(p.RandomSeedForOrder)), nil
	case OrderExplicit:
		if err := validatePermutation(p.ExplicitLabelOrder, maxState); err != nil {
			return nil, err
		}
		return append([]int(nil), p.ExplicitLabelOrder...), nil
	default:
		return nil, fmt.Errorf("%v: %w", p.LabelOrder, ErrUnknownLabelOrder)
	}
}

// validatePermutation checks that order holds every value of 0..n-1 once.
func validatePermutation(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%d entries for %d labels: %w", len(order), n, ErrInvalidLabelOrder)
	}
	seen := make([]bool, n)
	for i, l := range order {
		if l < 0 || l >= n {
			return fmt.Errorf("entry %d = %d: %w", i, l, ErrInvalidLabelOrder)
		}
		if seen[l] {
			return fmt.Errorf("label %d repeated: %w", l, ErrInvalidLabelOrder)
		}
		seen[l] = true
	}

	return nil
}
