package model

import (
	"fmt"
	"math"
)

// Table is a dense explicit function. Values are stored with the first
// variable varying fastest: index = l0 + s0*(l1 + s1*(l2 + ...)).
type Table struct {
	shape  []int
	values []float64
}

// NewTable builds a Table over the given label-space sizes. len(values) must
// equal the product of shape.
func NewTable(shape []int, values []float64) (*Table, error) {
	size := 1
	for _, s := range shape {
		if s < 1 {
			return nil, ErrEmptyLabelSpace
		}
		size *= s
	}
	if len(values) != size {
		return nil, fmt.Errorf("%d values for %d cells: %w", len(values), size, ErrFunctionShape)
	}

	return &Table{
		shape:  append([]int(nil), shape...),
		values: append([]float64(nil), values...),
	}, nil
}

// MustTable is NewTable that panics on error. Intended for literals in tests
// and examples.
func MustTable(shape []int, values ...float64) *Table {
	t, err := NewTable(shape, values)
	if err != nil {
		panic(err)
	}

	return t
}

// Arity implements Function.
func (t *Table) Arity() int { return len(t.shape) }

// Shape returns the label-space sizes of the table dimensions.
func (t *Table) Shape() []int { return t.shape }

// Energy implements Function.
func (t *Table) Energy(labels []int) float64 {
	idx, stride := 0, 1
	for j, s := range t.shape {
		idx += labels[j] * stride
		stride *= s
	}

	return t.values[idx]
}

// Potts charges Weight whenever the labels are not all equal.
type Potts struct {
	Weight float64
}

// Arity implements Function.
func (Potts) Arity() int { return -1 }

// Energy implements Function.
func (p Potts) Energy(labels []int) float64 {
	for j := 1; j < len(labels); j++ {
		if labels[j] != labels[0] {
			return p.Weight
		}
	}

	return 0
}

// TruncatedLinear is the pairwise smoothness Weight*min(|a-b|, Cap).
type TruncatedLinear struct {
	Weight float64
	Cap    float64
}

// Arity implements Function.
func (TruncatedLinear) Arity() int { return 2 }

// Energy implements Function.
func (t TruncatedLinear) Energy(labels []int) float64 {
	d := math.Abs(float64(labels[0] - labels[1]))
	if t.Cap > 0 && d > t.Cap {
		d = t.Cap
	}

	return t.Weight * d
}

// Unary is a single-variable cost vector indexed by label.
type Unary []float64

// Arity implements Function.
func (Unary) Arity() int { return 1 }

// Energy implements Function.
func (u Unary) Energy(labels []int) float64 { return u[labels[0]] }

// funcOf adapts a closure to Function.
type funcOf struct {
	arity int
	fn    func(labels []int) float64
}

// FuncOf wraps fn as a Function of the given arity (-1 for any).
func FuncOf(arity int, fn func(labels []int) float64) Function {
	return funcOf{arity: arity, fn: fn}
}

func (f funcOf) Arity() int                  { return f.arity }
func (f funcOf) Energy(labels []int) float64 { return f.fn(labels) }
