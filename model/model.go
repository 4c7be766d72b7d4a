package model

import (
	"fmt"
)

// NewModel creates a model with len(numLabels) variables, variable i having
// numLabels[i] labels. Returns ErrEmptyLabelSpace if any entry is < 1.
// Complexity: O(n).
func NewModel(numLabels []int, opts ...Option) (*Model, error) {
	for i, l := range numLabels {
		if l < 1 {
			return nil, fmt.Errorf("variable %d: %w", i, ErrEmptyLabelSpace)
		}
	}
	m := &Model{
		maxOrder:  DefaultMaxOrder,
		numLabels: append([]int(nil), numLabels...),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// NewUniformModel creates a model of n variables sharing the same label space.
// Complexity: O(n).
func NewUniformModel(n, labels int, opts ...Option) (*Model, error) {
	if n < 0 {
		return nil, ErrVariableOutOfRange
	}
	numLabels := make([]int, n)
	for i := range numLabels {
		numLabels[i] = labels
	}

	return NewModel(numLabels, opts...)
}

// AddFactor registers fn over the ordered variables vars and returns the
// factor index.
//
// Validation order: order cap, variable range, duplicates, function shape.
// A zero-arity factor is accepted and contributes the constant fn.Energy(nil).
//
// Complexity: O(k²) for the duplicate scan plus the shape check of fn.
func (m *Model) AddFactor(vars []int, fn Function) (int, error) {
	if fn == nil {
		return 0, ErrFunctionShape
	}
	if len(vars) > m.maxOrder {
		return 0, fmt.Errorf("%d variables, cap %d: %w", len(vars), m.maxOrder, ErrOrderExceeded)
	}
	n := len(m.numLabels)
	for j, v := range vars {
		if v < 0 || v >= n {
			return 0, fmt.Errorf("variable %d: %w", v, ErrVariableOutOfRange)
		}
		for _, w := range vars[:j] {
			if w == v {
				return 0, fmt.Errorf("variable %d: %w", v, ErrDuplicateVariable)
			}
		}
	}
	if a := fn.Arity(); a >= 0 && a != len(vars) {
		return 0, fmt.Errorf("arity %d for %d variables: %w", a, len(vars), ErrFunctionShape)
	}
	switch t := fn.(type) {
	case *Table:
		for j, v := range vars {
			if t.shape[j] != m.numLabels[v] {
				return 0, fmt.Errorf("dimension %d has %d labels, variable %d has %d: %w",
					j, t.shape[j], v, m.numLabels[v], ErrFunctionShape)
			}
		}
	case Unary:
		if len(t) != m.numLabels[vars[0]] {
			return 0, fmt.Errorf("%d costs for %d labels: %w", len(t), m.numLabels[vars[0]], ErrFunctionShape)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.factors = append(m.factors, factor{vars: append([]int(nil), vars...), fn: fn})

	return len(m.factors) - 1, nil
}

// NumVariables returns the number of variables. Complexity: O(1).
func (m *Model) NumVariables() int { return len(m.numLabels) }

// NumLabels returns the label-space size of variable i. Complexity: O(1).
func (m *Model) NumLabels(i int) int { return m.numLabels[i] }

// NumFactors returns the number of registered factors. Complexity: O(1).
func (m *Model) NumFactors() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.factors)
}

// MaxOrder returns the factor order cap of this model.
func (m *Model) MaxOrder() int { return m.maxOrder }

// FactorVariables returns the ordered variables of factor f. The slice is
// shared with the model and must not be modified.
func (m *Model) FactorVariables(f int) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.factors[f].vars
}

// FactorEnergy evaluates factor f at labels (factor order).
func (m *Model) FactorEnergy(f int, labels []int) float64 {
	m.mu.RLock()
	fn := m.factors[f].fn
	m.mu.RUnlock()

	return fn.Energy(labels)
}

// Stats returns a snapshot summary. Complexity: O(n + F).
func (m *Model) Stats() *Stats {
	s := &Stats{
		Variables: len(m.numLabels),
		MaxState:  MaxState(m),
		ByArity:   make(map[int]int),
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s.Factors = len(m.factors)
	for _, f := range m.factors {
		k := len(f.vars)
		s.ByArity[k]++
		if k > s.MaxArity {
			s.MaxArity = k
		}
	}

	return s
}

// MaxState returns the largest label-space size over all variables of m,
// or 0 for a model without variables. Complexity: O(n).
func MaxState(m EnergyModel) int {
	maxState := 0
	for i := 0; i < m.NumVariables(); i++ {
		if l := m.NumLabels(i); l > maxState {
			maxState = l
		}
	}

	return maxState
}

// MaxArity returns the largest factor arity of m. Complexity: O(F).
func MaxArity(m EnergyModel) int {
	k := 0
	for f := 0; f < m.NumFactors(); f++ {
		if a := len(m.FactorVariables(f)); a > k {
			k = a
		}
	}

	return k
}

// ValidateLabeling checks that labels is a full, in-range labeling of m.
// Returns ErrLabelingLength or ErrLabelOutOfRange (wrapped with the index).
// Complexity: O(n).
func ValidateLabeling(m EnergyModel, labels []int) error {
	if len(labels) != m.NumVariables() {
		return fmt.Errorf("got %d labels for %d variables: %w", len(labels), m.NumVariables(), ErrLabelingLength)
	}
	for i, l := range labels {
		if l < 0 || l >= m.NumLabels(i) {
			return fmt.Errorf("variable %d label %d of %d: %w", i, l, m.NumLabels(i), ErrLabelOutOfRange)
		}
	}

	return nil
}

// Evaluate returns the total energy of labels: the sum of every factor
// evaluated at the labels of its variables. The labeling is not validated.
//
// Complexity: O(Σ_f k_f) plus the cost of the factor functions.
func Evaluate(m EnergyModel, labels []int) float64 {
	var (
		total float64
		buf   []int
	)
	for f := 0; f < m.NumFactors(); f++ {
		vars := m.FactorVariables(f)
		buf = buf[:0]
		for _, v := range vars {
			buf = append(buf, labels[v])
		}
		total += m.FactorEnergy(f, buf)
	}

	return total
}

// Evaluate is the method form of the package-level Evaluate.
func (m *Model) Evaluate(labels []int) float64 { return Evaluate(m, labels) }
