package binary

import (
	"context"
	"math"
)

// sosNetwork minimizes a sum of submodular functions
//
//	E(x) = constant + Σ_v u_v(x_v) + Σ_c f_c(x_c)
//
// exactly, by push-relabel over exchange capacities.
//
// Every clique c carries a base φ_c of its table f_c (f_c(∅) = 0): φ_c(S) ≤
// f_c(S) for every subset S, with equality on the whole clique. slack[S]
// caches f_c(S) − φ_c(S). The excess of node v is
//
//	y_v = u_v(1) − u_v(0) + Σ_c φ_c(v)
//
// and moving α from i to j inside c keeps φ_c a base up to
//
//	cap_c(i→j) = min { slack[S] : j ∈ S, i ∉ S }.
//
// Once no node of positive excess reaches a node of negative excess, the
// nodes that reach a negative node are a minimizer (x = 1) and
// constant + Σ_v min(0, y_v) is the minimum.
type sosNetwork struct {
	n        int
	eps      float64
	constant float64
	excess   []float64
	cliques  []sosClique
	incident [][]sosEnd
}

type sosClique struct {
	vars  []int
	slack []float64
}

// sosEnd is the position of a node inside a clique.
type sosEnd struct {
	clique, pos int
}

// discharges between two context checks.
const sosCheckEvery = 1024

func newSoSNetwork(n int, eps float64) *sosNetwork {
	return &sosNetwork{
		n:        n,
		eps:      eps,
		excess:   make([]float64, n),
		incident: make([][]sosEnd, n),
	}
}

func (g *sosNetwork) addUnary(v int, e0, e1 float64) {
	g.constant += e0
	g.excess[v] += e1 - e0
}

// addClique registers a submodular table over distinct vars. The base starts
// at the greedy vertex for the order vars[0], vars[1], ...
func (g *sosNetwork) addClique(vars []int, table []float64) {
	k := len(vars)
	c := sosClique{vars: vars, slack: make([]float64, 1<<k)}
	g.constant += table[0]

	phi := make([]float64, k)
	for p := 0; p < k; p++ {
		prefix := 1<<p - 1
		phi[p] = table[prefix|1<<p] - table[prefix]
		g.excess[vars[p]] += phi[p]
	}
	for s := range c.slack {
		v := table[s] - table[0]
		for p := 0; p < k; p++ {
			if s&(1<<p) != 0 {
				v -= phi[p]
			}
		}
		c.slack[s] = v
	}

	id := len(g.cliques)
	g.cliques = append(g.cliques, c)
	for p, v := range vars {
		g.incident[v] = append(g.incident[v], sosEnd{clique: id, pos: p})
	}
}

// capacity returns cap_c(vars[p] → vars[q]).
func (c *sosClique) capacity(p, q int) float64 {
	bp, bq := 1<<p, 1<<q
	best := math.Inf(1)
	for s, v := range c.slack {
		if s&bq != 0 && s&bp == 0 && v < best {
			best = v
		}
	}

	return best
}

// push moves amt from vars[p] to vars[q] inside c.
func (g *sosNetwork) push(c *sosClique, p, q int, amt float64) {
	bp, bq := 1<<p, 1<<q
	for s := range c.slack {
		switch inP, inQ := s&bp != 0, s&bq != 0; {
		case inQ && !inP:
			c.slack[s] -= amt
		case inP && !inQ:
			c.slack[s] += amt
		}
	}
	g.excess[c.vars[p]] -= amt
	g.excess[c.vars[q]] += amt
}

// minimize returns a minimizer over all n nodes and the minimum.
//
// Steps:
//  1. Label every node with its residual distance to a negative node (n if
//     none is reachable).
//  2. No positive node below n: stop. Otherwise discharge positive nodes in
//     FIFO order and go back to 1.
//  3. x_v = 1 exactly for the nodes labeled below n.
func (g *sosNetwork) minimize(ctx context.Context) ([]int, float64, error) {
	label := make([]int, g.n)
	queued := make([]bool, g.n)
	var queue []int
	steps := 0
	for round := 0; ; round++ {
		g.globalRelabel(label)
		queue = queue[:0]
		for v := range label {
			queued[v] = g.active(v, label)
			if queued[v] {
				queue = append(queue, v)
			}
		}
		if len(queue) == 0 || round > g.n {
			break
		}
		for len(queue) > 0 {
			if steps++; steps%sosCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return nil, 0, err
				}
			}
			v := queue[0]
			queue = queue[1:]
			queued[v] = false
			g.discharge(v, label, func(w int) {
				if !queued[w] && g.active(w, label) {
					queued[w] = true
					queue = append(queue, w)
				}
			})
		}
	}

	x := make([]int, g.n)
	value := g.constant
	for v := range x {
		if label[v] < g.n {
			x[v] = 1
		}
		value += math.Min(0, g.excess[v])
	}

	return x, value, nil
}

func (g *sosNetwork) active(v int, label []int) bool {
	return g.excess[v] > g.eps && label[v] < g.n
}

// discharge pushes the excess of v along admissible arcs (label drop of
// exactly one) and relabels v when none is left. activate is called for
// every node that received flow.
func (g *sosNetwork) discharge(v int, label []int, activate func(int)) {
	for g.excess[v] > g.eps && label[v] < g.n {
		pushed := false
		next := g.n
		for _, end := range g.incident[v] {
			c := &g.cliques[end.clique]
			for q, w := range c.vars {
				if q == end.pos {
					continue
				}
				capacity := c.capacity(end.pos, q)
				if capacity <= g.eps {
					continue
				}
				if label[v] != label[w]+1 {
					next = min(next, label[w]+1)
					continue
				}
				g.push(c, end.pos, q, math.Min(g.excess[v], capacity))
				activate(w)
				pushed = true
				if g.excess[v] <= g.eps {
					return
				}
			}
		}
		if !pushed {
			label[v] = min(max(next, label[v]+1), g.n)
		}
	}
}

// globalRelabel sets label[v] to the residual distance from v to the nearest
// node of negative excess, or n when there is none, by a backward BFS.
func (g *sosNetwork) globalRelabel(label []int) {
	queue := make([]int, 0, g.n)
	for v := range label {
		label[v] = g.n
		if g.excess[v] < -g.eps {
			label[v] = 0
			queue = append(queue, v)
		}
	}
	for qi := 0; qi < len(queue); qi++ {
		w := queue[qi]
		for _, end := range g.incident[w] {
			c := &g.cliques[end.clique]
			for p, u := range c.vars {
				if p == end.pos || label[u] < g.n {
					continue
				}
				if c.capacity(p, end.pos) > g.eps {
					label[u] = label[w] + 1
					queue = append(queue, u)
				}
			}
		}
	}
}
