package pbf

// Expand computes the subset coefficients of a k-variable energy table.
//
// table[a] is the energy at boolean assignment a (bit j set = variable j is 1);
// on return coeffs[S] = Σ_{a ⊆ S} (−1)^{|S\a|}·table[a] for every S in
// [0, 2^k). coeffs may alias table. Both must hold at least 2^k entries.
//
// Steps:
//  1. Copy table into coeffs (skipped when they alias).
//  2. For every bit j, subtract the coefficient of S without j from S with j.
//
// Complexity: O(k·2^k) time, O(1) extra space.
func Expand(table []float64, k int, coeffs []float64) {
	n := 1 << k
	if &coeffs[0] != &table[0] {
		copy(coeffs[:n], table[:n])
	}
	for j := 0; j < k; j++ {
		bit := 1 << j
		for s := 0; s < n; s++ {
			if s&bit != 0 {
				coeffs[s] -= coeffs[s^bit]
			}
		}
	}
}

// Reconstruct is the inverse of Expand: table[a] = Σ_{S ⊆ a} coeffs[S].
// table may alias coeffs.
//
// Complexity: O(k·2^k) time, O(1) extra space.
func Reconstruct(coeffs []float64, k int, table []float64) {
	n := 1 << k
	if &coeffs[0] != &table[0] {
		copy(table[:n], coeffs[:n])
	}
	for j := 0; j < k; j++ {
		bit := 1 << j
		for a := 0; a < n; a++ {
			if a&bit != 0 {
				table[a] += table[a^bit]
			}
		}
	}
}

// Degree returns the number of variables in subset mask s.
func Degree(s int) int {
	d := 0
	for ; s != 0; s &= s - 1 {
		d++
	}

	return d
}
