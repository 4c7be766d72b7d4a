// Package expansion implements alpha-expansion-fusion: move-making
// minimization of multi-label energies with factors of arbitrary order.
//
// Each step picks a candidate label alpha from a schedule and asks, for every
// variable at once, "keep the current label or switch to alpha?". The answer
// is a binary problem: every factor of order k is tabulated over its 2^k
// keep/switch patterns, expanded into subset coefficients (pbf.Expand) and
// accumulated into a pseudo-boolean energy that a binary.Solver minimizes
// after reduction to quadratic form. Switching never increases the energy
// because "keep everything" is always a feasible answer and undecided
// variables keep their label.
//
// Life cycle:
//
//	INIT ──Infer/Step──▶ ITERATING ──▶ CONVERGED        (a full label cycle changed nothing)
//	                              └──▶ BUDGET_EXHAUSTED (MaxIterations reached or a visitor stopped)
//
// Both terminal states are normal results. Reset returns to INIT with the
// policies reapplied, so equal parameters reproduce equal trajectories.
//
// Policies:
//
//	Initialization: InitZero (default), InitRandom, InitLocalOptimal, InitExplicit
//	LabelOrder:     OrderIdentity (default), OrderRandom, OrderExplicit
//
// Random policies own their generator: a *rand.Rand seeded from the
// Parameter on every application, never a process-wide source.
//
// Besides expansion, Fuse merges the current labeling with any full proposal
// in one binary move, and SolveBinary solves two-label models directly.
//
// Concurrency: a driver is single-threaded. With Parameter.Workers > 1 the
// per-factor reduction runs on contiguous chunks in parallel, each into its
// own energy, merged in chunk order before the solve.
package expansion
