package flow

import (
	"context"
	"fmt"
)

// Network is a directed flow network over dense integer nodes, stored as
// paired arcs: arc a and arc a^1 are each other's reverse.
//
// The zero value is an empty network; NewNetwork preallocates nodes.
// Network is not safe for concurrent mutation.
type Network struct {
	first []int32   // first[u] = head of u's arc list, -1 if none
	next  []int32   // next[a] = following arc of the same tail
	head  []int32   // head[a] = node the arc points to
	res   []float64 // residual capacity
	orig  []float64 // capacity at insertion time, for Reset
}

// NewNetwork returns a network with n isolated nodes.
func NewNetwork(n int) *Network {
	g := &Network{first: make([]int32, n)}
	for i := range g.first {
		g.first[i] = -1
	}

	return g
}

// NumNodes returns the number of nodes.
func (g *Network) NumNodes() int { return len(g.first) }

// NumArcs returns the number of arcs, counting both directions of a pair.
func (g *Network) NumArcs() int { return len(g.head) }

// AddNode appends an isolated node and returns its index.
func (g *Network) AddNode() int {
	g.first = append(g.first, -1)

	return len(g.first) - 1
}

// AddEdge inserts u→v with capacity c and v→u with capacity rc.
// Self-loops are ignored (they never carry flow).
//
// Returns ErrNodeOutOfRange or EdgeError (negative capacity).
// Complexity: O(1) amortized.
func (g *Network) AddEdge(u, v int, c, rc float64) error {
	n := len(g.first)
	if u < 0 || u >= n || v < 0 || v >= n {
		return fmt.Errorf("arc %d→%d in %d nodes: %w", u, v, n, ErrNodeOutOfRange)
	}
	if c < 0 {
		return EdgeError{From: u, To: v, Cap: c}
	}
	if rc < 0 {
		return EdgeError{From: v, To: u, Cap: rc}
	}
	if u == v {
		return nil
	}
	g.addArc(u, v, c)
	g.addArc(v, u, rc)

	return nil
}

func (g *Network) addArc(u, v int, c float64) {
	a := int32(len(g.head))
	g.head = append(g.head, int32(v))
	g.res = append(g.res, c)
	g.orig = append(g.orig, c)
	g.next = append(g.next, g.first[u])
	g.first[u] = a
}

// Reset restores every residual capacity to its insertion value.
// Complexity: O(E).
func (g *Network) Reset() {
	copy(g.res, g.orig)
}

// SourceSide returns, for every node, whether it is reachable from s through
// arcs of residual capacity > eps. After a maximum flow this is the source
// set of a minimum cut.
//
// Complexity: O(V + E).
func (g *Network) SourceSide(s int, eps float64) []bool {
	seen := make([]bool, len(g.first))
	if s < 0 || s >= len(g.first) {
		return seen
	}
	seen[s] = true
	queue := []int32{int32(s)}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for a := g.first[u]; a >= 0; a = g.next[a] {
			v := g.head[a]
			if !seen[v] && g.res[a] > eps {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}

	return seen
}

// CutValue returns the total original capacity of arcs leaving the set
// marked true in side. Complexity: O(E).
func (g *Network) CutValue(side []bool) float64 {
	var total float64
	for u := range g.first {
		if !side[u] {
			continue
		}
		for a := g.first[u]; a >= 0; a = g.next[a] {
			if !side[g.head[a]] {
				total += g.orig[a]
			}
		}
	}

	return total
}

// MaxFlow computes the maximum s→t flow with the algorithm selected in opts.
// Residual capacities are left in g for SourceSide; call Reset to reuse the
// original capacities.
//
// Steps:
//  1. Normalize options; validate terminals.
//  2. Dispatch to the selected algorithm.
//
// Errors: ErrNodeOutOfRange, ErrSourceIsSink, context errors (the flow pushed
// so far is returned alongside).
func MaxFlow(ctx context.Context, g *Network, s, t int, opts Options) (float64, error) {
	opts.normalize()
	if ctx == nil {
		ctx = context.Background()
	}
	n := g.NumNodes()
	if s < 0 || s >= n || t < 0 || t >= n {
		return 0, fmt.Errorf("terminals %d, %d in %d nodes: %w", s, t, n, ErrNodeOutOfRange)
	}
	if s == t {
		return 0, ErrSourceIsSink
	}
	if opts.Logger != nil {
		opts.Logger.Debug("max-flow", "algorithm", opts.Algorithm, "nodes", n, "arcs", g.NumArcs())
	}
	switch opts.Algorithm {
	case EdmondsKarp:
		return edmondsKarp(ctx, g, s, t, opts)
	case FordFulkerson:
		return fordFulkerson(ctx, g, s, t, opts)
	default:
		return dinic(ctx, g, s, t, opts)
	}
}

// augment pushes delta along the arcs of path (arc indices).
func (g *Network) augment(path []int32, delta float64) {
	for _, a := range path {
		g.res[a] -= delta
		g.res[a^1] += delta
	}
}
