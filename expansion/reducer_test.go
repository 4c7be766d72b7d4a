package expansion_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfusion/binary"
	"github.com/katalvlaran/lvfusion/builder"
	"github.com/katalvlaran/lvfusion/expansion"
	"github.com/katalvlaran/lvfusion/flow"
	"github.com/katalvlaran/lvfusion/model"
	"github.com/katalvlaran/lvfusion/pbf"
)

// TestMoveEnergyReproducesModel checks that the move energy equals the model
// energy of the moved labeling on every switch pattern, serial and parallel.
func TestMoveEnergyReproducesModel(t *testing.T) {
	r := rand.New(rand.NewSource(21))
	for trial := 0; trial < 10; trial++ {
		const n, labels = 7, 4
		m := randomModel(t, int64(trial), n, labels, 5)
		current := make([]int, n)
		target := make([]int, n)
		for i := range current {
			current[i] = r.Intn(labels)
			target[i] = r.Intn(labels)
		}
		for _, workers := range []int{1, 3} {
			e, err := expansion.MoveEnergy(context.Background(), m, current, target, workers)
			require.NoError(t, err)
			for a := 0; a < 1<<n; a++ {
				x := make([]int, n)
				for i := range x {
					x[i] = (a >> i) & 1
				}
				want := m.Evaluate(applyMove(current, target, x))
				require.InDelta(t, want, e.Evaluate(x), 1e-9, "trial %d workers %d x=%v", trial, workers, x)
			}
		}
	}
}

// TestMoveEnergyFixedVariables checks that variables whose target equals
// their label never appear in a term.
func TestMoveEnergyFixedVariables(t *testing.T) {
	m := randomModel(t, 3, 6, 3, 4)
	current := []int{0, 1, 2, 0, 1, 2}
	target := []int{0, 2, 2, 1, 1, 0}
	e, err := expansion.MoveEnergy(context.Background(), m, current, target, 1)
	require.NoError(t, err)
	for _, term := range e.Terms() {
		for _, v := range term.Vars {
			require.NotEqual(t, current[v], target[v], "variable %d", v)
		}
	}
	for _, c := range e.Cliques() {
		for _, v := range c.Vars {
			require.NotEqual(t, current[v], target[v], "clique variable %d", v)
		}
	}
	require.InDelta(t, m.Evaluate(current), e.Evaluate(make([]int, len(current))), 1e-9)
}

// TestMoveEnergyZeroArity keeps the value of factors without variables.
func TestMoveEnergyZeroArity(t *testing.T) {
	m, err := model.NewUniformModel(2, 2)
	require.NoError(t, err)
	_, err = m.AddFactor(nil, model.FuncOf(0, func([]int) float64 { return 2.5 }))
	require.NoError(t, err)
	_, err = m.AddFactor([]int{0, 1}, model.Potts{Weight: 1})
	require.NoError(t, err)

	current, target := []int{0, 1}, []int{1, 1}
	e, err := expansion.MoveEnergy(context.Background(), m, current, target, 1)
	require.NoError(t, err)
	require.InDelta(t, m.Evaluate(current), e.Constant(), 1e-9)
	require.InDelta(t, 2.5, m.Evaluate([]int{1, 1}), 1e-9)
	require.InDelta(t, m.Evaluate([]int{1, 1}), e.Evaluate([]int{1, 0}), 1e-9)

	got, err := expansion.SolveBinary(context.Background(), m, expansion.DefaultBinaryParameter())
	require.NoError(t, err)
	require.InDelta(t, 2.5, m.Evaluate(got), 1e-9)
}

// TestBlockPottsMovesAreExact solves every expansion move of a block Potts
// grid with QPBO and enumeration. Submodular moves must be solved exactly.
func TestBlockPottsMovesAreExact(t *testing.T) {
	r := rand.New(rand.NewSource(29))
	const labels = 3
	observed := [][]int{{0, 1, 2}, {1, 1, 0}, {2, 0, 2}}
	m, err := builder.Build(builder.Denoise(observed, labels), builder.WithHigherOrder(1.5))
	require.NoError(t, err)
	n := m.NumVariables()

	for trial := 0; trial < 20; trial++ {
		current := make([]int, n)
		for i := range current {
			current[i] = r.Intn(labels)
		}
		for alpha := 0; alpha < labels; alpha++ {
			target := make([]int, n)
			for i := range target {
				target[i] = alpha
			}
			e, err := expansion.MoveEnergy(context.Background(), m, current, target, 1)
			require.NoError(t, err)

			q := binary.NewQPBO(e.NumVars(), pbf.DefaultReduction, flow.DefaultOptions())
			q.AddEnergy(e)
			require.NoError(t, q.Solve(context.Background()))
			x := make([]int, e.NumVars())
			for v := range x {
				x[v] = q.Label(v)
			}

			ex := binary.NewExhaustive(e.NumVars())
			for _, term := range e.Terms() {
				require.NoError(t, ex.AddTerm(term.Coef, term.Vars...))
			}
			for _, c := range e.Cliques() {
				require.NoError(t, ex.AddClique(c.Vars, c.Table))
			}
			require.NoError(t, ex.AddTerm(e.Constant()))
			require.NoError(t, ex.Solve(context.Background()))

			if e.NumCliques() > 0 {
				require.True(t, q.Exact(), "trial %d alpha %d", trial, alpha)
			}
			require.InDelta(t, ex.Value(), e.Evaluate(x), 1e-9, "trial %d alpha %d", trial, alpha)
		}
	}
}

// TestSolveBinary compares the one-shot binary solve with enumeration.
func TestSolveBinary(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	const n = 8
	m, err := model.NewUniformModel(n, 2)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err = m.AddFactor([]int{i}, model.Unary{r.Float64() * 4, r.Float64() * 4})
		require.NoError(t, err)
	}
	for i := 0; i+2 < n; i += 2 {
		_, err = m.AddFactor([]int{i, i + 1, i + 2}, model.Potts{Weight: 1.5})
		require.NoError(t, err)
	}

	best, bestE := []int(nil), 0.0
	for a := 0; a < 1<<n; a++ {
		x := make([]int, n)
		for i := range x {
			x[i] = (a >> i) & 1
		}
		if v := m.Evaluate(x); best == nil || v < bestE {
			best, bestE = x, v
		}
	}

	for _, kind := range []binary.Kind{binary.KindQPBO, binary.KindExhaustive} {
		p := expansion.DefaultBinaryParameter()
		p.Solver.Kind = kind
		got, err := expansion.SolveBinary(context.Background(), m, p)
		require.NoError(t, err)
		require.InDelta(t, bestE, m.Evaluate(got), 1e-9, kind.String())
	}

	three, err := model.NewUniformModel(2, 3)
	require.NoError(t, err)
	_, err = expansion.SolveBinary(context.Background(), three, expansion.DefaultBinaryParameter())
	require.ErrorIs(t, err, expansion.ErrUnsupportedLabelCount)
}

// TestSolveBinarySingleLabel pins one-label variables to 0.
func TestSolveBinarySingleLabel(t *testing.T) {
	m, err := model.NewModel([]int{1, 2})
	require.NoError(t, err)
	_, err = m.AddFactor([]int{0, 1}, model.Potts{Weight: 3})
	require.NoError(t, err)
	_, err = m.AddFactor([]int{1}, model.Unary{0, -1})
	require.NoError(t, err)

	got, err := expansion.SolveBinary(context.Background(), m, expansion.DefaultBinaryParameter())
	require.NoError(t, err)
	require.Equal(t, []int{0, 0}, got)
}
