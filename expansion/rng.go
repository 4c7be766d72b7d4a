package expansion

import "math/rand"

// rngFromSeed returns a fresh, locally owned generator seeded with seed as
// given; zero is an ordinary seed.
//
// Complexity: O(1).
func rngFromSeed(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}

// permutation returns 0..n-1 shuffled by Fisher–Yates with rng.
//
// Complexity: O(n).
func permutation(n int, rng *rand.Rand) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}

	return out
}
