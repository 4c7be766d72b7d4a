package flow

import (
	"context"
	"math"
)

// fordFulkerson computes the maximum flow with DFS augmenting paths.
//
// Steps:
//  1. Repeat:
//     a. Check for cancellation.
//     b. Iterative DFS from s over arcs with residual > eps, recording the
//     parent arc of every discovered node.
//     c. If t was not discovered, stop.
//     d. Augment by the bottleneck of the discovered path.
//
// Complexity:
//
//	Time:   O(E·F) where F is the number of augmentations.
//	Memory: O(V) beyond the network.
//
// Suitable for small networks; Dinic is the default for a reason.
func fordFulkerson(ctx context.Context, g *Network, s, t int, opts Options) (float64, error) {
	n := g.NumNodes()
	parent := make([]int32, n)
	visited := make([]bool, n)
	stack := make([]int32, 0, n)
	path := make([]int32, 0, n)
	eps := opts.Epsilon

	var maxFlow float64
	for {
		if err := ctx.Err(); err != nil {
			return maxFlow, err
		}

		for i := range visited {
			visited[i] = false
		}
		visited[s] = true
		stack = append(stack[:0], int32(s))
		found := false
		for len(stack) > 0 && !found {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for a := g.first[u]; a >= 0; a = g.next[a] {
				v := g.head[a]
				if visited[v] || g.res[a] <= eps {
					continue
				}
				visited[v] = true
				parent[v] = a
				if int(v) == t {
					found = true
					break
				}
				stack = append(stack, v)
			}
		}
		if !found {
			break
		}

		delta := math.Inf(1)
		path = path[:0]
		for v := int32(t); int(v) != s; {
			a := parent[v]
			path = append(path, a)
			if g.res[a] < delta {
				delta = g.res[a]
			}
			v = g.head[a^1]
		}
		g.augment(path, delta)
		maxFlow += delta
		if opts.Logger != nil {
			opts.Logger.Debug("ford-fulkerson: augment", "arcs", len(path), "pushed", delta, "total", maxFlow)
		}
	}

	return maxFlow, nil
}
