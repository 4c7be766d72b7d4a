package binary

import (
	"context"

	"github.com/katalvlaran/lvfusion/flow"
	"github.com/katalvlaran/lvfusion/pbf"
)

// QPBO accumulates a pseudo-boolean energy of any degree and minimizes it.
//
// Submodular clique tables of order ≥ 3 are kept whole by the energy. When
// the quadratic reduction of everything else is submodular as well, the whole
// energy is a sum of submodular functions and is minimized exactly by a flow
// over exchange capacities. Otherwise every term is reduced to quadratic form
// and solved by roof duality, which may leave nodes undecided.
type QPBO struct {
	energy    *pbf.Energy
	reduction pbf.Reduction
	flowOpts  flow.Options

	labels     []int // -1 = undecided; original nodes only
	lowerBound float64
	quadratic  *pbf.Quadratic
	exact      bool
}

// NewQPBO returns a QPBO solver over n nodes.
func NewQPBO(n int, r pbf.Reduction, opts flow.Options) *QPBO {
	return &QPBO{energy: pbf.NewEnergy(n), reduction: r, flowOpts: opts}
}

// AddNodes implements Solver.
func (s *QPBO) AddNodes(n int) int { return s.energy.AddVars(n) }

// NumNodes implements Solver.
func (s *QPBO) NumNodes() int { return s.energy.NumVars() }

// AddUnaryTerm implements Solver.
func (s *QPBO) AddUnaryTerm(v int, e0, e1 float64) error { return s.energy.AddUnaryTerm(v, e0, e1) }

// AddTerm implements Solver.
func (s *QPBO) AddTerm(coef float64, vars ...int) error { return s.energy.AddTerm(coef, vars...) }

// AddClique implements Solver.
func (s *QPBO) AddClique(vars []int, table []float64) error { return s.energy.AddClique(vars, table) }

// AddEnergy merges an already accumulated energy into the solver.
func (s *QPBO) AddEnergy(e *pbf.Energy) { s.energy.Merge(e) }

// Solve implements Solver.
func (s *QPBO) Solve(ctx context.Context) error {
	if s.energy.NumCliques() > 0 {
		q := s.energy.Monomials().ToQuadratic(s.reduction)
		if q.IsSubmodular(s.epsilon()) {
			return s.solveSubmodular(ctx, q)
		}
	}

	s.quadratic = s.energy.ToQuadratic(s.reduction)
	labels, lb, err := RoofDual(ctx, s.quadratic, s.flowOpts)
	if err != nil {
		return err
	}
	s.labels = labels[:s.energy.NumVars()]
	s.lowerBound = lb
	s.exact = false

	return nil
}

// solveSubmodular minimizes the kept cliques together with q, the submodular
// reduction of the monomials, on a sum-of-submodular network.
func (s *QPBO) solveSubmodular(ctx context.Context, q *pbf.Quadratic) error {
	g := newSoSNetwork(q.NumVars, s.epsilon())
	g.constant = q.Constant
	for v, u := range q.Unary {
		g.addUnary(v, u[0], u[1])
	}
	for _, p := range q.Pairwise {
		g.addClique([]int{p.I, p.J}, []float64{p.E00, p.E10, p.E01, p.E11})
	}
	for _, c := range s.energy.Cliques() {
		g.addClique(c.Vars, c.Table)
	}
	x, value, err := g.minimize(ctx)
	if err != nil {
		return err
	}
	s.quadratic = q
	s.labels = x[:s.energy.NumVars()]
	s.lowerBound = value
	s.exact = true

	return nil
}

func (s *QPBO) epsilon() float64 {
	if s.flowOpts.Epsilon > 0 {
		return s.flowOpts.Epsilon
	}

	return flow.DefaultEpsilon
}

// Label implements Solver.
func (s *QPBO) Label(v int) int {
	if s.labels == nil || s.labels[v] < 0 {
		return 0
	}

	return s.labels[v]
}

// Exact reports whether the last Solve took the sum-of-submodular path, in
// which case every node is decided and LowerBound is the minimum.
func (s *QPBO) Exact() bool { return s.exact }

// Unlabeled returns the number of undecided original nodes.
func (s *QPBO) Unlabeled() int {
	n := 0
	for _, l := range s.labels {
		if l < 0 {
			n++
		}
	}

	return n
}

// LowerBound returns the lower bound of the last Solve: the roof-dual bound,
// or the minimum itself when Exact.
func (s *QPBO) LowerBound() float64 { return s.lowerBound }

// Quadratic returns the reduced energy of the last Solve. After an exact
// solve it covers the monomials only, not the kept cliques.
func (s *QPBO) Quadratic() *pbf.Quadratic { return s.quadratic }

// RoofDual minimizes a quadratic pseudo-boolean energy by roof duality.
//
// Every variable v gets two network nodes, p = v and p̄ = v+N, standing for
// x_v and 1−x_v. Submodular pairs are encoded on (p, q) and (p̄, q̄),
// non-submodular pairs on (p, q̄) and (p̄, q), each half weighted ½; unary
// terms split the same way. After the maximum flow, node y is 0 when it is
// reachable from the source. x_v is decided when y_p ≠ y_p̄, otherwise it is
// returned as −1.
//
// Returns the partial labeling over q.NumVars variables and the lower bound
// (constant + cut value).
//
// Complexity: one max-flow over 2N+2 nodes and O(N + P) arc pairs.
func RoofDual(ctx context.Context, q *pbf.Quadratic, opts flow.Options) ([]int, float64, error) {
	n := q.NumVars
	src, sink := 2*n, 2*n+1
	b := &dualBuilder{
		net:   flow.NewNetwork(2*n + 2),
		unary: make([][2]float64, 2*n),
		bound: q.Constant,
	}

	for v, u := range q.Unary {
		b.addUnary(v, u[0]/2, u[1]/2)
		b.addUnary(v+n, u[1]/2, u[0]/2)
	}
	for _, p := range q.Pairwise {
		i, j := p.I, p.J
		if p.Submodular(0) {
			if err := b.addPair(i, j, p.E00/2, p.E01/2, p.E10/2, p.E11/2); err != nil {
				return nil, 0, err
			}
			if err := b.addPair(i+n, j+n, p.E11/2, p.E10/2, p.E01/2, p.E00/2); err != nil {
				return nil, 0, err
			}
		} else {
			if err := b.addPair(i, j+n, p.E01/2, p.E00/2, p.E11/2, p.E10/2); err != nil {
				return nil, 0, err
			}
			if err := b.addPair(i+n, j, p.E10/2, p.E11/2, p.E00/2, p.E01/2); err != nil {
				return nil, 0, err
			}
		}
	}
	if err := b.addTerminals(src, sink); err != nil {
		return nil, 0, err
	}

	cut, err := flow.MaxFlow(ctx, b.net, src, sink, opts)
	if err != nil {
		return nil, 0, err
	}
	eps := opts.Epsilon
	if eps <= 0 {
		eps = flow.DefaultEpsilon
	}
	side := b.net.SourceSide(src, eps)

	labels := make([]int, n)
	for v := 0; v < n; v++ {
		yp, yn := 1, 1
		if side[v] {
			yp = 0
		}
		if side[v+n] {
			yn = 0
		}
		if yp != yn {
			labels[v] = yp
		} else {
			labels[v] = -1
		}
	}

	return labels, b.bound + cut, nil
}

// dualBuilder collects terminal costs per node so that every node gets at
// most one terminal arc.
type dualBuilder struct {
	net   *flow.Network
	unary [][2]float64
	bound float64
}

func (b *dualBuilder) addUnary(node int, e0, e1 float64) {
	b.unary[node][0] += e0
	b.unary[node][1] += e1
}

// addPair encodes a submodular table over nodes (u, v):
//
//	E = A + (C−A)·y_u + (D−C)·y_v + (B+C−A−D)·(1−y_u)·y_v
//
// where the last product is the arc u→v.
func (b *dualBuilder) addPair(u, v int, a, bb, c, d float64) error {
	b.bound += a
	b.addUnary(u, 0, c-a)
	b.addUnary(v, 0, d-c)
	w := bb + c - a - d
	if w <= 0 {
		return nil
	}

	return b.net.AddEdge(u, v, w, 0)
}

// addTerminals turns the accumulated unary costs into source/sink arcs:
// paying e1 means the node sits on the sink side (source→node arc), paying
// e0 the source side (node→sink arc).
func (b *dualBuilder) addTerminals(src, sink int) error {
	for node, u := range b.unary {
		d := u[1] - u[0]
		switch {
		case d > 0:
			b.bound += u[0]
			if err := b.net.AddEdge(src, node, d, 0); err != nil {
				return err
			}
		case d < 0:
			b.bound += u[1]
			if err := b.net.AddEdge(node, sink, -d, 0); err != nil {
				return err
			}
		default:
			b.bound += u[0]
		}
	}

	return nil
}
