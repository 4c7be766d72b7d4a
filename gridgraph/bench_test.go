package gridgraph_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvfusion/gridgraph"
)

// BenchmarkSegments measures Segments on a random 1000×1000 labeling with values in [0,4].
// Complexity: O(W×H×d)
func BenchmarkSegments(b *testing.B) {
	const n = 1000
	r := rand.New(rand.NewSource(42))
	labels := make([]int, n*n)
	for i := range labels {
		labels[i] = r.Intn(5)
	}
	gg, err := gridgraph.New(n, n, gridgraph.Conn4)
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = gg.Segments(labels); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEdges measures neighbor enumeration on a 500×500 Conn8 grid.
func BenchmarkEdges(b *testing.B) {
	gg, _ := gridgraph.New(500, 500, gridgraph.Conn8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gg.Edges()
	}
}
