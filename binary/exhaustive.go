package binary

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/lvfusion/pbf"
)

// Exhaustive minimizes by enumerating all 2^n assignments. Among minimizers
// it returns the one with the smallest bit pattern, so all-zero wins ties.
type Exhaustive struct {
	energy *pbf.Energy
	best   []int
	value  float64
}

// NewExhaustive returns an exhaustive solver over n nodes.
func NewExhaustive(n int) *Exhaustive {
	return &Exhaustive{energy: pbf.NewEnergy(n)}
}

// AddNodes implements Solver.
func (s *Exhaustive) AddNodes(n int) int { return s.energy.AddVars(n) }

// NumNodes implements Solver.
func (s *Exhaustive) NumNodes() int { return s.energy.NumVars() }

// AddUnaryTerm implements Solver.
func (s *Exhaustive) AddUnaryTerm(v int, e0, e1 float64) error {
	return s.energy.AddUnaryTerm(v, e0, e1)
}

// AddTerm implements Solver.
func (s *Exhaustive) AddTerm(coef float64, vars ...int) error {
	return s.energy.AddTerm(coef, vars...)
}

// AddClique implements Solver.
func (s *Exhaustive) AddClique(vars []int, table []float64) error {
	return s.energy.AddClique(vars, table)
}

// Solve implements Solver.
//
// Complexity: O(2^n · T) for T accumulated terms.
func (s *Exhaustive) Solve(ctx context.Context) error {
	n := s.energy.NumVars()
	if n > MaxExhaustiveVars {
		return fmt.Errorf("%d > %d: %w", n, MaxExhaustiveVars, ErrTooManyVariables)
	}

	flat := s.energy.Expanded()
	terms := flat.Terms()
	masks := make([]uint32, len(terms))
	for i, t := range terms {
		for _, v := range t.Vars {
			masks[i] |= 1 << uint(v)
		}
	}

	best, bestMask := math.Inf(1), uint32(0)
	for a := uint32(0); a < 1<<uint(n); a++ {
		if a&0xffff == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		e := flat.Constant()
		for i, m := range masks {
			if a&m == m {
				e += terms[i].Coef
			}
		}
		if e < best {
			best, bestMask = e, a
		}
	}

	s.best = make([]int, n)
	for v := range s.best {
		s.best[v] = int(bestMask>>uint(v)) & 1
	}
	s.value = best

	return nil
}

// Label implements Solver.
func (s *Exhaustive) Label(v int) int {
	if s.best == nil {
		return 0
	}

	return s.best[v]
}

// Value returns the minimum found by the last Solve.
func (s *Exhaustive) Value() float64 { return s.value }
