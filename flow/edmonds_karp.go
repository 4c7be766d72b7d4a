package flow

import (
	"context"
	"math"
)

// edmondsKarp computes the maximum flow using BFS shortest augmenting paths.
//
// Steps:
//  1. Repeat:
//     a. Check for cancellation.
//     b. BFS from s over arcs with residual > eps, recording the parent arc.
//     c. If t was not reached, stop.
//     d. Walk parent arcs back from t to find the bottleneck, then augment.
//
// Complexity: O(V·E²) time, O(V) memory beyond the network.
func edmondsKarp(ctx context.Context, g *Network, s, t int, opts Options) (float64, error) {
	n := g.NumNodes()
	parent := make([]int32, n)
	queue := make([]int32, 0, n)
	path := make([]int32, 0, n)
	eps := opts.Epsilon

	var maxFlow float64
	for {
		if err := ctx.Err(); err != nil {
			return maxFlow, err
		}

		for i := range parent {
			parent[i] = -1
		}
		queue = append(queue[:0], int32(s))
		reached := false
		for i := 0; i < len(queue) && !reached; i++ {
			u := queue[i]
			for a := g.first[u]; a >= 0; a = g.next[a] {
				v := g.head[a]
				if int(v) == s || parent[v] >= 0 || g.res[a] <= eps {
					continue
				}
				parent[v] = a
				if int(v) == t {
					reached = true
					break
				}
				queue = append(queue, v)
			}
		}
		if !reached {
			break
		}

		bottleneck := math.Inf(1)
		path = path[:0]
		for v := int32(t); int(v) != s; {
			a := parent[v]
			path = append(path, a)
			if g.res[a] < bottleneck {
				bottleneck = g.res[a]
			}
			v = g.head[a^1]
		}
		g.augment(path, bottleneck)
		maxFlow += bottleneck
		if opts.Logger != nil {
			opts.Logger.Debug("edmonds-karp: augment", "arcs", len(path), "pushed", bottleneck, "total", maxFlow)
		}
	}

	return maxFlow, nil
}
