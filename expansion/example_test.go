package expansion_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvfusion/expansion"
	"github.com/katalvlaran/lvfusion/model"
)

// ExampleExpansion_Infer denoises a five-pixel signal with three levels: the
// noisy middle pixel is pulled back to its neighbors by a Potts prior, and a
// third-order Potts factor ties the tail together.
func ExampleExpansion_Infer() {
	observed := []int{0, 0, 2, 0, 1}
	m, _ := model.NewUniformModel(len(observed), 3)
	for i, o := range observed {
		u := model.Unary{1, 1, 1}
		u[o] = 0
		_, _ = m.AddFactor([]int{i}, u)
	}
	for i := 0; i+1 < len(observed); i++ {
		_, _ = m.AddFactor([]int{i, i + 1}, model.Potts{Weight: 0.8})
	}
	_, _ = m.AddFactor([]int{2, 3, 4}, model.Potts{Weight: 0.5})

	e, _ := expansion.New(m, expansion.DefaultParameter())
	state, _ := e.Infer(context.Background(), nil)
	labels, status := e.Arg(1)

	fmt.Println(state, status == expansion.StatusSuccess)
	fmt.Println(labels, e.Energy())
	// Output:
	// converged true
	// [0 0 0 0 0] 2
}
