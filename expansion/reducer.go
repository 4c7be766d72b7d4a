package expansion

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvfusion/model"
	"github.com/katalvlaran/lvfusion/pbf"
)

// reducer turns the move "current → target" over every factor of a model
// into a pseudo-boolean energy. x_i = 1 means variable i takes target[i].
//
// A variable with target[i] == current[i] is fixed: it keeps its label on
// both branches, so every subset containing it has a zero coefficient and is
// never enumerated.
//
// The sink energy at the boolean assignment x equals the model energy of the
// labeling obtained by applying x, constant included.
type reducer struct {
	m        model.EnergyModel
	maxOrder int
}

func newReducer(m model.EnergyModel) *reducer {
	return &reducer{m: m}
}

// scratch holds per-goroutine buffers sized for the largest factor.
type scratch struct {
	labels []int
	active []int
	vars   []int
	table  []float64
}

func (r *reducer) newScratch() *scratch {
	return &scratch{
		labels: make([]int, r.maxOrder),
		active: make([]int, 0, r.maxOrder),
		vars:   make([]int, 0, r.maxOrder),
		table:  make([]float64, 1<<r.maxOrder),
	}
}

// reduceRange adds factors [lo, hi) to e.
func (r *reducer) reduceRange(e *pbf.Energy, current, target []int, lo, hi int, s *scratch) error {
	for f := lo; f < hi; f++ {
		if err := r.reduceFactor(e, current, target, f, s); err != nil {
			return err
		}
	}

	return nil
}

// reduceFactor adds the expansion of factor f to e.
//
// Steps:
//  1. Collect the positions whose target differs from the current label.
//  2. None (or a zero-arity factor): add the factor's current energy as a
//     constant.
//  3. One variable (or a unary factor): add E(current) + (E(target) − E(current))·x.
//  4. Otherwise evaluate the factor on all 2^k' switch patterns of the k'
//     active positions and add the table as a clique over the active
//     variables; the sink keeps it whole when it is submodular.
//
// Complexity: O(k + 2^k'·(k + eval) + k'²·2^k').
func (r *reducer) reduceFactor(e *pbf.Energy, current, target []int, f int, s *scratch) error {
	vars := r.m.FactorVariables(f)
	k := len(vars)
	if k == 0 {
		e.AddConstant(r.m.FactorEnergy(f, s.labels[:0]))
		return nil
	}
	labels := s.labels[:k]
	s.active = s.active[:0]
	s.vars = s.vars[:0]
	for j, v := range vars {
		labels[j] = current[v]
		if target[v] != current[v] {
			s.active = append(s.active, j)
			s.vars = append(s.vars, v)
		}
	}

	e0 := r.m.FactorEnergy(f, labels)
	switch len(s.active) {
	case 0:
		e.AddConstant(e0)
		return nil
	case 1:
		j := s.active[0]
		labels[j] = target[vars[j]]
		e1 := r.m.FactorEnergy(f, labels)
		e.AddConstant(e0)
		return e.AddTerm(e1-e0, vars[j])
	}

	kk := len(s.active)
	table := s.table[:1<<kk]
	table[0] = e0
	for a := 1; a < len(table); a++ {
		for b, j := range s.active {
			if a&(1<<b) != 0 {
				labels[j] = target[vars[j]]
			} else {
				labels[j] = current[vars[j]]
			}
		}
		table[a] = r.m.FactorEnergy(f, labels)
	}

	return e.AddClique(s.vars, table)
}

// reduce builds the move energy over all factors, serially when workers ≤ 1.
func (r *reducer) reduce(ctx context.Context, current, target []int, workers int) (*pbf.Energy, error) {
	n, nf := r.m.NumVariables(), r.m.NumFactors()
	r.maxOrder = model.MaxArity(r.m)
	if workers <= 1 || nf < 2*workers {
		e := pbf.NewEnergy(n)
		if err := r.reduceRange(e, current, target, 0, nf, r.newScratch()); err != nil {
			return nil, err
		}
		return e, nil
	}

	return r.reduceParallel(ctx, current, target, workers)
}

// reduceParallel splits the factors into contiguous chunks, reduces every
// chunk into its own energy and merges them in chunk order.
//
// Steps:
//  1. chunk i covers factors [i·size, min((i+1)·size, F)).
//  2. One goroutine per chunk, each with private scratch buffers and sink.
//  3. Merge sinks 0..workers-1 on the calling goroutine.
//
// The labeling is only read here; callers mutate it after reduce returns.
func (r *reducer) reduceParallel(ctx context.Context, current, target []int, workers int) (*pbf.Energy, error) {
	n, nf := r.m.NumVariables(), r.m.NumFactors()
	size := (nf + workers - 1) / workers
	parts := make([]*pbf.Energy, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * size
		hi := min(lo+size, nf)
		if lo >= hi {
			continue
		}
		parts[w] = pbf.NewEnergy(n)
		w := w
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return r.reduceRange(parts[w], current, target, lo, hi, r.newScratch())
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := pbf.NewEnergy(n)
	for _, p := range parts {
		if p != nil {
			out.Merge(p)
		}
	}

	return out, nil
}

// MoveEnergy returns the pseudo-boolean energy of the move current → target
// over m: for every boolean x, its value equals the model energy of the
// labeling that takes target[i] where x_i = 1 and current[i] elsewhere.
// workers > 1 reduces factors in parallel chunks.
func MoveEnergy(ctx context.Context, m model.EnergyModel, current, target []int, workers int) (*pbf.Energy, error) {
	return newReducer(m).reduce(ctx, current, target, workers)
}
