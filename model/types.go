// Package model defines the discrete energy model consumed by the move-making
// solvers: variables with finite label spaces and factors (cliques) over
// ordered tuples of distinct variables.
//
// The read-only EnergyModel interface is what the solvers depend on; Model is
// the in-memory, thread-safe implementation shipped with the module.
//
// Errors:
//
//	ErrOrderExceeded      - factor arity exceeds the model's hard order cap.
//	ErrVariableOutOfRange - factor references a variable index outside [0, n).
//	ErrDuplicateVariable  - factor lists the same variable twice.
//	ErrEmptyLabelSpace    - a variable was declared with fewer than one label.
//	ErrFunctionShape      - a factor function does not match the factor's label spaces.
//	ErrLabelingLength     - a labeling has the wrong number of entries.
//	ErrLabelOutOfRange    - a labeling entry is not a valid label for its variable.
package model

import (
	"errors"
	"sync"
)

// Sentinel errors for model construction and evaluation.
var (
	// ErrOrderExceeded indicates a factor with more variables than the order cap.
	ErrOrderExceeded = errors.New("model: factor order exceeds the maximum supported order")

	// ErrVariableOutOfRange indicates a variable index outside [0, NumVariables()).
	ErrVariableOutOfRange = errors.New("model: variable index out of range")

	// ErrDuplicateVariable indicates a factor listing one variable more than once.
	ErrDuplicateVariable = errors.New("model: duplicate variable in factor")

	// ErrEmptyLabelSpace indicates a variable with no admissible label.
	ErrEmptyLabelSpace = errors.New("model: variable must have at least one label")

	// ErrFunctionShape indicates a function whose shape disagrees with the factor.
	ErrFunctionShape = errors.New("model: function shape does not match factor")

	// ErrLabelingLength indicates a labeling whose length differs from NumVariables().
	ErrLabelingLength = errors.New("model: labeling length mismatch")

	// ErrLabelOutOfRange indicates a label outside [0, NumLabels(i)).
	ErrLabelOutOfRange = errors.New("model: label out of range")
)

const (
	// DefaultMaxOrder is the order cap applied when WithMaxOrder is not given.
	// Reducers enumerate 2^k assignments per factor, which is what bounds it.
	DefaultMaxOrder = 10

	// HardMaxOrder is the largest cap WithMaxOrder accepts.
	HardMaxOrder = 16
)

// EnergyModel is the read-only view over variables and factors used by the
// solvers. Implementations must be safe for concurrent readers.
type EnergyModel interface {
	// NumVariables returns the number of variables.
	NumVariables() int
	// NumLabels returns the size of the label space of variable i.
	NumLabels(i int) int
	// NumFactors returns the number of registered factors.
	NumFactors() int
	// FactorVariables returns the ordered variable indices of factor f.
	// Callers must not modify the returned slice.
	FactorVariables(f int) []int
	// FactorEnergy evaluates factor f at labels, where labels[j] is the label
	// of FactorVariables(f)[j].
	FactorEnergy(f int, labels []int) float64
}

// Function is the energy of a single factor, evaluated at the labels of the
// factor's variables in factor order.
type Function interface {
	// Arity returns the number of variables the function expects, or -1 when
	// the function accepts any arity.
	Arity() int
	// Energy returns the value at labels.
	Energy(labels []int) float64
}

// Option configures a Model before creation.
type Option func(m *Model)

// WithMaxOrder sets the factor order cap. Panics unless 1 <= k <= HardMaxOrder.
func WithMaxOrder(k int) Option {
	if k < 1 || k > HardMaxOrder {
		panic("model: WithMaxOrder: order must be in [1, HardMaxOrder]")
	}
	return func(m *Model) { m.maxOrder = k }
}

// factor is one registered clique. vars is owned by the model and never
// handed out for mutation.
type factor struct {
	vars []int
	fn   Function
}

// Model is the in-memory EnergyModel.
//
// Variables and their label spaces are fixed at construction; factors are
// append-only. mu guards the factor catalog so that solvers may read while
// another goroutine registers factors for a later run.
type Model struct {
	mu sync.RWMutex // guards factors

	maxOrder  int
	numLabels []int
	factors   []factor
}

// Stats is a snapshot summary of a Model.
type Stats struct {
	Variables int         // number of variables
	Factors   int         // number of factors
	MaxState  int         // largest label space
	MaxArity  int         // largest registered factor arity
	ByArity   map[int]int // factor count keyed by arity
}
