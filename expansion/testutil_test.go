package expansion_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfusion/model"
)

// randomModel builds n variables with `labels` labels each: a random unary
// per variable, a truncated-linear pair between consecutive variables, and
// `triples` random dense tables over three variables. All energies are small
// integers so that sums are exact.
func randomModel(t testing.TB, seed int64, n, labels, triples int) *model.Model {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	m, err := model.NewUniformModel(n, labels)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		u := make(model.Unary, labels)
		for l := range u {
			u[l] = float64(r.Intn(10))
		}
		_, err = m.AddFactor([]int{i}, u)
		require.NoError(t, err)
	}
	for i := 0; i+1 < n; i++ {
		_, err = m.AddFactor([]int{i, i + 1}, model.TruncatedLinear{Weight: 2, Cap: 2})
		require.NoError(t, err)
	}
	for c := 0; c < triples; c++ {
		vars := r.Perm(n)[:3]
		values := make([]float64, labels*labels*labels)
		for j := range values {
			values[j] = float64(r.Intn(8))
		}
		_, err = m.AddFactor(vars, model.MustTable([]int{labels, labels, labels}, values...))
		require.NoError(t, err)
	}

	return m
}

// fakeModel is a minimal EnergyModel without an order cap of its own.
type fakeModel struct {
	labels  []int
	factors [][]int
}

func (f *fakeModel) NumVariables() int           { return len(f.labels) }
func (f *fakeModel) NumLabels(i int) int         { return f.labels[i] }
func (f *fakeModel) NumFactors() int             { return len(f.factors) }
func (f *fakeModel) FactorVariables(i int) []int { return f.factors[i] }
func (f *fakeModel) FactorEnergy(_ int, labels []int) float64 {
	s := 0
	for _, l := range labels {
		s += l
	}

	return float64(s)
}

func applyMove(current, target []int, x []int) []int {
	out := append([]int(nil), current...)
	for i := range out {
		if x[i] == 1 {
			out[i] = target[i]
		}
	}

	return out
}
