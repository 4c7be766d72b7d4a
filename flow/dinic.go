package flow

import (
	"context"
	"math"
)

// dinic computes the maximum flow with Dinic's algorithm (level graph +
// blocking flows).
//
// Steps:
//  1. Repeat until the sink is unreachable:
//     a. Check for cancellation.
//     b. BFS from the source to assign levels over arcs with residual > eps.
//     c. If the sink has no level, stop.
//     d. Push blocking flow by DFS along level-increasing arcs, remembering
//     the next arc to try per node (iter), optionally rebuilding levels
//     every LevelRebuildInterval augmentations.
//
// Complexity:
//
//	Time:   O(V²·E).
//	Memory: O(V) beyond the network.
func dinic(ctx context.Context, g *Network, s, t int, opts Options) (float64, error) {
	n := g.NumNodes()
	level := make([]int32, n)
	iter := make([]int32, n)
	queue := make([]int32, 0, n)
	eps := opts.Epsilon

	var maxFlow float64
	augmentCount := 0
	for {
		// 1a) Cancellation check before BFS
		if err := ctx.Err(); err != nil {
			return maxFlow, err
		}

		// 1b) BFS to compute levels
		for i := range level {
			level[i] = -1
		}
		level[s] = 0
		queue = append(queue[:0], int32(s))
		for i := 0; i < len(queue); i++ {
			u := queue[i]
			for a := g.first[u]; a >= 0; a = g.next[a] {
				v := g.head[a]
				if level[v] < 0 && g.res[a] > eps {
					level[v] = level[u] + 1
					queue = append(queue, v)
				}
			}
		}
		// 1c) Sink unreachable: done
		if level[t] < 0 {
			break
		}

		// 1d) Blocking flow
		copy(iter, g.first)
		for {
			pushed := g.dinicPush(level, iter, int32(s), int32(t), math.Inf(1), eps)
			if pushed <= eps {
				break
			}
			maxFlow += pushed
			augmentCount++
			if opts.Logger != nil {
				opts.Logger.Debug("dinic: augment", "pushed", pushed, "total", maxFlow)
			}
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	return maxFlow, nil
}

// dinicPush sends up to avail units from u towards t along the level graph
// and returns the amount actually sent. iter[u] advances past dead arcs.
func (g *Network) dinicPush(level, iter []int32, u, t int32, avail, eps float64) float64 {
	if u == t {
		return avail
	}
	for ; iter[u] >= 0; iter[u] = g.next[iter[u]] {
		a := iter[u]
		v := g.head[a]
		if g.res[a] <= eps || level[v] != level[u]+1 {
			continue
		}
		send := avail
		if g.res[a] < send {
			send = g.res[a]
		}
		if pushed := g.dinicPush(level, iter, v, t, send, eps); pushed > 0 {
			g.res[a] -= pushed
			g.res[a^1] += pushed
			return pushed
		}
	}

	return 0
}
