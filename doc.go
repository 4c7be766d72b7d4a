// Package lvfusion minimizes discrete energies with higher-order cliques by
// alpha-expansion and fusion moves.
//
// What is in the box?
//
//	A move-making optimizer for multi-label models whose factors couple up to
//	ten variables at once:
//		• Models: variables with finite label spaces, dense/Potts/truncated factors
//		• Pseudo-boolean algebra: Möbius expansion of clique tables, quadratic reductions
//		• Max-flow: Dinic, Edmonds–Karp, Ford–Fulkerson on a residual network
//		• Binary solvers: QPBO roof duality (partial optimality), exhaustive search
//		• Moves: alpha-expansion loop with schedules, initializations, visitors, fusion
//		• Generators: chains, grid denoising with 2×2 blocks, random higher-order models
//
// Everything is organized in subpackages:
//
//	model/        EnergyModel interface and the thread-safe Model store
//	pbf/          pseudo-boolean energies, Möbius transform, HOCR and grouped reductions
//	flow/         residual networks and max-flow algorithms
//	binary/       Solver capability: QPBO and exhaustive minimizers
//	expansion/    the alpha-expansion driver, policies, visitors, SolveBinary
//	gridgraph/    pixel lattices: neighbor pairs, 2×2 blocks, segments
//	builder/      deterministic synthetic models
//	config/       TOML / YAML run files
//
// Each move is a binary problem:
//
//	x_i = 0 keeps the current label, x_i = 1 switches to alpha.
//
// Its energy, including constants, is handed to a binary solver; the labeling
// never gets worse from one step to the next.
//
//	go install github.com/katalvlaran/lvfusion/cmd/lvfusion@latest
package lvfusion
