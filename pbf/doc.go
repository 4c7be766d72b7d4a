// Package pbf implements pseudo-boolean energies over binary variables:
// accumulation of terms of arbitrary degree, the Möbius expansion that turns a
// clique energy table into per-subset coefficients, and the reduction of a
// higher-order energy to an equivalent quadratic one.
//
// # Terms
//
// An Energy stores a constant plus coefficients c_S of monomials Π_{v∈S} x_v,
// keyed by the sorted, deduplicated variable tuple S. Terms with the same
// tuple aggregate regardless of the order in which callers list variables,
// which is what lets overlapping cliques share pairwise and higher terms.
//
// # Expansion
//
// For a clique of order k with energy table E over the 2^k boolean
// assignments (bit j of the index = variable j is 1), Expand computes
//
//	c_S = Σ_{a ⊆ S} (−1)^{|S \ a|} E(a)
//
// so that E(a) = Σ_{S ⊆ a} c_S for every a. c_∅ is the constant E(0).
// Reconstruct is the inverse transform.
//
// # Quadratic reduction
//
// ToQuadratic rewrites every term of degree ≥ 3 with auxiliary variables so
// that min over the auxiliaries of the quadratic energy equals the original
// energy for every assignment of the original variables:
//
//   - negative terms use one auxiliary w: a·Πx = min_w a·w·(Σx − (d−1));
//   - positive terms depend on the Reduction:
//     ReductionPairwise reduces each term on its own with ⌊(d−1)/2⌋
//     auxiliaries (HOCR);
//     ReductionChen groups positive terms by their smallest variable and
//     eliminates that variable with one shared auxiliary per group.
//
// Negative-term reductions are submodular. Positive reductions introduce
// non-submodular pairs, which roof-duality solvers handle partially.
//
// Complexity:
//
//	Expand / Reconstruct: O(k·2^k) time, in place.
//	ToQuadratic:          O(T·d² + T log T) for T terms of degree ≤ d.
package pbf
