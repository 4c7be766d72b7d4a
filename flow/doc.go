// Package flow implements maximum-flow / minimum-cut algorithms on an
// indexed residual Network. It is the primitive underneath the binary
// solvers: a pseudo-boolean energy is encoded as arc capacities and the
// minimum s–t cut gives the minimizing assignment.
//
// The key algorithms offered are:
//
//   - Ford–Fulkerson
//
//   - Method: depth-first search to find any augmenting path.
//
//   - Time:   O(E · F), where F is the total flow pushed (integral networks).
//
//   - Use when simplicity and moderate capacities suffice.
//
//   - Edmonds–Karp
//
//   - Method: breadth-first search for shortest (fewest-arc) augmenting paths.
//
//   - Time:   O(V · E²) in the worst case.
//
//   - Guarantees polynomial worst-case behavior.
//
//   - Dinic (default)
//
//   - Method: level graph construction + blocking flow via DFS.
//
//   - Time:   O(V² · E) in general, much better on the sparse, shallow
//     networks produced by energy minimization.
//
// # Network
//
// Nodes are dense integers [0, NumNodes()). AddEdge(u, v, c, rc) inserts the
// arc pair u→v (capacity c) and v→u (capacity rc) in one step, which is the
// natural shape of pairwise energy terms. Capacities are float64; residual
// capacities ≤ Options.Epsilon count as saturated.
//
// After MaxFlow returns, SourceSide reports the nodes reachable from the
// source in the residual network: the source set of a minimum cut.
//
// # API
//
//	opts := flow.DefaultOptions()        // Dinic, Epsilon 1e-9
//	opts.Algorithm = flow.EdmondsKarp
//	value, err := flow.MaxFlow(ctx, net, s, t, opts)
//	side := net.SourceSide(s, opts.Epsilon)
//
// # Errors
//
//	ErrNodeOutOfRange - an arc or terminal references a missing node.
//	ErrSourceIsSink   - source and sink are the same node.
//	EdgeError         - a negative capacity was given to AddEdge.
//	context.Canceled / context.DeadlineExceeded - ctx ended between phases.
package flow
