package expansion_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/katalvlaran/lvfusion/expansion"
)

// BenchmarkInfer measures full runs on random third-order models with serial
// and parallel reduction.
func BenchmarkInfer(b *testing.B) {
	m := randomModel(b, 42, 200, 5, 150)
	for _, workers := range []int{1, 4} {
		b.Run("workers="+strconv.Itoa(workers), func(b *testing.B) {
			p := expansion.DefaultParameter()
			p.Workers = workers
			for i := 0; i < b.N; i++ {
				e, err := expansion.New(m, p)
				if err != nil {
					b.Fatal(err)
				}
				if _, err = e.Infer(context.Background(), nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
