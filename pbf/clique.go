package pbf

// CliqueTolerance is the slack allowed when AddClique tests a table for
// submodularity.
const CliqueTolerance = 1e-9

// minKeptDegree is the smallest clique AddClique keeps whole. Smaller
// submodular tables expand into terms that are submodular already.
const minKeptDegree = 3

// Clique is a submodular energy table kept whole by an Energy.
// Table[a] is the value when Vars[j] equals bit j of a; Table[0] is 0, the
// value at the all-zero assignment lives in the energy constant.
type Clique struct {
	Vars  []int
	Table []float64
}

// Value returns the table entry selected by the boolean assignment x.
func (c Clique) Value(x []int) float64 {
	a := 0
	for j, v := range c.Vars {
		if x[v] != 0 {
			a |= 1 << j
		}
	}

	return c.Table[a]
}

// IsSubmodularTable reports whether a table over k variables satisfies
//
//	t[S∪{i}] + t[S∪{j}] ≥ t[S] + t[S∪{i,j}] − eps
//
// for every subset S and every pair i, j outside it. The local condition is
// equivalent to submodularity on the boolean lattice.
//
// Complexity: O(k²·2^k).
func IsSubmodularTable(table []float64, k int, eps float64) bool {
	n := 1 << k
	for s := 0; s < n; s++ {
		for i := 0; i < k; i++ {
			bi := 1 << i
			if s&bi != 0 {
				continue
			}
			for j := i + 1; j < k; j++ {
				bj := 1 << j
				if s&bj != 0 {
					continue
				}
				if table[s|bi]+table[s|bj]+eps < table[s]+table[s|bi|bj] {
					return false
				}
			}
		}
	}

	return true
}
