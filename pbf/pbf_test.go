package pbf_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvfusion/pbf"
)

type PBFSuite struct {
	suite.Suite
}

// naiveCoefficients evaluates Σ_{a⊆S} (−1)^{|S\a|}·E(a) literally.
func naiveCoefficients(table []float64, k int) []float64 {
	out := make([]float64, 1<<k)
	for s := range out {
		for a := 0; a < 1<<k; a++ {
			if a&^s != 0 {
				continue
			}
			sign := 1.0
			if pbf.Degree(s^a)%2 == 1 {
				sign = -1
			}
			out[s] += sign * table[a]
		}
	}

	return out
}

func (s *PBFSuite) TestExpandMatchesDefinition() {
	r := rand.New(rand.NewSource(3))
	for k := 0; k <= 6; k++ {
		table := make([]float64, 1<<k)
		for i := range table {
			table[i] = float64(r.Intn(21) - 10)
		}
		got := make([]float64, len(table))
		pbf.Expand(table, k, got)
		require.Equal(s.T(), naiveCoefficients(table, k), got, "k=%d", k)

		back := make([]float64, len(table))
		pbf.Reconstruct(got, k, back)
		require.Equal(s.T(), table, back, "k=%d", k)
	}
}

func (s *PBFSuite) TestExpandInPlace() {
	table := []float64{3, 5, 7, 2}
	pbf.Expand(table, 2, table)
	// c0=3, c1=5-3, c2=7-3, c12=2-5-7+3
	require.Equal(s.T(), []float64{3, 2, 4, -7}, table)
}

func (s *PBFSuite) TestAddTermAggregates() {
	e := pbf.NewEnergy(4)
	require.NoError(s.T(), e.AddTerm(2, 3, 1))
	require.NoError(s.T(), e.AddTerm(1.5, 1, 3, 3))
	require.NoError(s.T(), e.AddTerm(4))
	require.NoError(s.T(), e.AddTerm(0, 0, 1, 2))
	require.NoError(s.T(), e.AddUnaryTerm(0, 1, 3))

	require.Equal(s.T(), 5.0, e.Constant())
	require.Equal(s.T(), []pbf.Term{
		{Coef: 2, Vars: []int{0}},
		{Coef: 3.5, Vars: []int{1, 3}},
	}, e.Terms())
	require.Equal(s.T(), 2, e.NumTerms())

	require.ErrorIs(s.T(), e.AddTerm(1, 4), pbf.ErrVariableOutOfRange)
	big := pbf.NewEnergy(20)
	vars := make([]int, pbf.MaxDegree+1)
	for i := range vars {
		vars[i] = i
	}
	require.ErrorIs(s.T(), big.AddTerm(1, vars...), pbf.ErrDegreeExceeded)
}

// TestAddCliqueEvaluates checks that a clique table is reproduced exactly by
// its registered terms for every assignment.
func (s *PBFSuite) TestAddCliqueEvaluates() {
	r := rand.New(rand.NewSource(5))
	e := pbf.NewEnergy(6)
	vars := []int{4, 1, 3}
	table := make([]float64, 8)
	for i := range table {
		table[i] = r.Float64()*10 - 5
	}
	require.NoError(s.T(), e.AddClique(vars, table))
	for a := 0; a < 8; a++ {
		x := make([]int, 6)
		for j, v := range vars {
			x[v] = (a >> j) & 1
		}
		require.InDelta(s.T(), table[a], e.Evaluate(x), 1e-9)
	}
	require.ErrorIs(s.T(), e.AddClique(vars, table[:7]), pbf.ErrTableSize)
}

// pottsTable is the k-variable table that is 0 on the two uniform
// assignments and w elsewhere.
func pottsTable(k int, w float64) []float64 {
	t := make([]float64, 1<<k)
	for a := 1; a < len(t)-1; a++ {
		t[a] = w
	}

	return t
}

func (s *PBFSuite) TestIsSubmodularTable() {
	require.True(s.T(), pbf.IsSubmodularTable(pottsTable(4, 2), 4, 0))
	require.True(s.T(), pbf.IsSubmodularTable([]float64{0, 1, 1, 1}, 2, 0))
	// x0·x1·x2 rewards agreement on ones: supermodular
	require.False(s.T(), pbf.IsSubmodularTable([]float64{0, 0, 0, 0, 0, 0, 0, 1}, 3, 0))
	require.False(s.T(), pbf.IsSubmodularTable(pottsTable(3, -1), 3, 0))
	require.True(s.T(), pbf.IsSubmodularTable([]float64{0, 0, 0, 0, 0, 0, 0, 1e-12}, 3, 1e-9))
}

// TestSubmodularCliqueKept checks that a submodular table of order four is
// stored whole, shifted into the constant, and that every view of the energy
// agrees with the table.
func (s *PBFSuite) TestSubmodularCliqueKept() {
	e := pbf.NewEnergy(6)
	vars := []int{5, 0, 2, 3}
	table := pottsTable(4, 1.5)
	for a := range table {
		table[a] += 2
	}
	require.NoError(s.T(), e.AddClique(vars, table))
	require.NoError(s.T(), e.AddTerm(-1, 1))

	require.Equal(s.T(), 1, e.NumCliques())
	require.Equal(s.T(), vars, e.Cliques()[0].Vars)
	require.Zero(s.T(), e.Cliques()[0].Table[0])
	require.Equal(s.T(), 2.0, e.Constant())
	require.Equal(s.T(), []pbf.Term{{Coef: -1, Vars: []int{1}}}, e.Terms())

	flat := e.Expanded()
	require.Zero(s.T(), flat.NumCliques())
	mono := e.Monomials()
	require.Zero(s.T(), mono.NumCliques())
	require.Equal(s.T(), e.Terms(), mono.Terms())

	q := e.ToQuadratic(pbf.ReductionPairwise)
	for a := 0; a < 1<<6; a++ {
		x := make([]int, 6)
		for v := range x {
			x[v] = (a >> v) & 1
		}
		want := -float64(x[1]) + table[x[5]|x[0]<<1|x[2]<<2|x[3]<<3]
		require.InDelta(s.T(), want, e.Evaluate(x), 1e-12, "x=%v", x)
		require.InDelta(s.T(), want, flat.Evaluate(x), 1e-9, "x=%v", x)
		require.InDelta(s.T(), want, minOverAux(q, x), 1e-9, "x=%v", x)
	}

	other := pbf.NewEnergy(6)
	require.NoError(s.T(), other.AddClique([]int{1, 2, 4}, pottsTable(3, 1)))
	e.Merge(other)
	require.Equal(s.T(), 2, e.NumCliques())
}

// TestCliqueExpandedWhenNotKept covers tables that stay in monomial form:
// supermodular, pairwise, and with a repeated variable.
func (s *PBFSuite) TestCliqueExpandedWhenNotKept() {
	e := pbf.NewEnergy(4)
	require.NoError(s.T(), e.AddClique([]int{0, 1, 2}, []float64{0, 0, 0, 0, 0, 0, 0, 1}))
	require.NoError(s.T(), e.AddClique([]int{2, 3}, []float64{0, 1, 1, 1}))
	require.NoError(s.T(), e.AddClique([]int{3, 3, 1}, pottsTable(3, 1)))
	require.Zero(s.T(), e.NumCliques())
	require.ErrorIs(s.T(), e.AddClique([]int{0, 1, 7}, pottsTable(3, 1)), pbf.ErrVariableOutOfRange)
}

func (s *PBFSuite) TestMerge() {
	a := pbf.NewEnergy(2)
	b := pbf.NewEnergy(3)
	require.NoError(s.T(), a.AddTerm(1, 0, 1))
	require.NoError(s.T(), b.AddTerm(-1, 0, 1))
	require.NoError(s.T(), b.AddTerm(2, 2))
	b.AddConstant(1)
	a.Merge(b)
	require.Equal(s.T(), 3, a.NumVars())
	require.Equal(s.T(), 1.0, a.Constant())
	require.Equal(s.T(), []pbf.Term{{Coef: 2, Vars: []int{2}}}, a.Terms())
}

// minOverAux minimizes q over its auxiliary variables for fixed originals.
func minOverAux(q *pbf.Quadratic, x []int) float64 {
	aux := q.NumAux()
	full := make([]int, q.NumVars)
	copy(full, x)
	best := math.Inf(1)
	for w := 0; w < 1<<aux; w++ {
		for i := 0; i < aux; i++ {
			full[q.NumOriginal+i] = (w >> i) & 1
		}
		if v := q.Evaluate(full); v < best {
			best = v
		}
	}

	return best
}

// TestReductionsPreserveMinimum checks min_w q(x, w) == e(x) for every x and
// both reductions.
func (s *PBFSuite) TestReductionsPreserveMinimum() {
	r := rand.New(rand.NewSource(9))
	for trial := 0; trial < 15; trial++ {
		const n = 4
		e := pbf.NewEnergy(n)
		for i := 0; i < 6; i++ {
			d := 1 + r.Intn(n)
			require.NoError(s.T(), e.AddTerm(float64(r.Intn(11)-5), r.Perm(n)[:d]...))
		}
		for _, red := range []pbf.Reduction{pbf.ReductionPairwise, pbf.ReductionChen} {
			q := e.ToQuadratic(red)
			require.LessOrEqual(s.T(), q.NumAux(), 14)
			for a := 0; a < 1<<n; a++ {
				x := make([]int, n)
				for v := range x {
					x[v] = (a >> v) & 1
				}
				require.InDelta(s.T(), e.Evaluate(x), minOverAux(q, x), 1e-9, "trial %d %v x=%v", trial, red, x)
			}
		}
	}
}

// TestNegativeTermsStaySubmodular checks that negative-only higher-order
// energies reduce to submodular quadratics.
func (s *PBFSuite) TestNegativeTermsStaySubmodular() {
	e := pbf.NewEnergy(5)
	require.NoError(s.T(), e.AddTerm(-3, 0, 1, 2))
	require.NoError(s.T(), e.AddTerm(-1, 1, 2, 3, 4))
	require.NoError(s.T(), e.AddTerm(-2, 0, 4))
	require.NoError(s.T(), e.AddTerm(7, 2))
	q := e.ToQuadratic(pbf.ReductionPairwise)
	require.True(s.T(), q.IsSubmodular(0))
	require.Equal(s.T(), 2, q.NumAux())
}

func (s *PBFSuite) TestParseReduction() {
	for _, r := range []pbf.Reduction{pbf.ReductionPairwise, pbf.ReductionChen} {
		got, err := pbf.ParseReduction(r.String())
		require.NoError(s.T(), err)
		require.Equal(s.T(), r, got)
	}
	got, err := pbf.ParseReduction("")
	require.NoError(s.T(), err)
	require.Equal(s.T(), pbf.DefaultReduction, got)
	_, err = pbf.ParseReduction("ishikawa")
	require.ErrorIs(s.T(), err, pbf.ErrUnknownReduction)
}

func (s *PBFSuite) TestPairTerm() {
	p := pbf.PairTerm{I: 0, J: 1, E00: 1, E01: 4, E10: 3, E11: 2}
	require.True(s.T(), p.Submodular(0))
	require.Equal(s.T(), 4.0, p.Value(0, 1))
	p.E11 = 9
	require.False(s.T(), p.Submodular(0))
}

func TestPBFSuite(t *testing.T) {
	suite.Run(t, new(PBFSuite))
}
