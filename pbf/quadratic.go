package pbf

import "sort"

// Quadratic is a pseudo-boolean energy of degree at most two.
//
// Variables [0, NumOriginal) are the variables of the Energy it was reduced
// from; [NumOriginal, NumVars) are auxiliaries introduced by the reduction.
type Quadratic struct {
	NumVars     int
	NumOriginal int
	Constant    float64
	Unary       [][2]float64 // Unary[v][x] is the cost of x_v = x
	Pairwise    []PairTerm   // at most one entry per (I, J), I < J

	pairIndex map[[2]int]int
}

func newQuadratic(n int, constant float64) *Quadratic {
	return &Quadratic{
		NumVars:     n,
		NumOriginal: n,
		Constant:    constant,
		Unary:       make([][2]float64, n),
		pairIndex:   make(map[[2]int]int),
	}
}

// AddVar appends an auxiliary variable and returns its index.
func (q *Quadratic) AddVar() int {
	q.Unary = append(q.Unary, [2]float64{})
	q.NumVars++

	return q.NumVars - 1
}

// AddUnary adds e0 to x_v=0 and e1 to x_v=1.
func (q *Quadratic) AddUnary(v int, e0, e1 float64) {
	q.Unary[v][0] += e0
	q.Unary[v][1] += e1
}

// AddPair adds a pairwise table over (x_i, x_j); e01 is the value at
// x_i=0, x_j=1. Entries for the same unordered pair aggregate.
func (q *Quadratic) AddPair(i, j int, e00, e01, e10, e11 float64) {
	if i > j {
		i, j = j, i
		e01, e10 = e10, e01
	}
	if q.pairIndex == nil {
		q.pairIndex = make(map[[2]int]int, len(q.Pairwise))
		for idx, p := range q.Pairwise {
			q.pairIndex[[2]int{p.I, p.J}] = idx
		}
	}
	idx, ok := q.pairIndex[[2]int{i, j}]
	if !ok {
		idx = len(q.Pairwise)
		q.pairIndex[[2]int{i, j}] = idx
		q.Pairwise = append(q.Pairwise, PairTerm{I: i, J: j})
	}
	p := &q.Pairwise[idx]
	p.E00 += e00
	p.E01 += e01
	p.E10 += e10
	p.E11 += e11
}

// Evaluate returns the energy at the boolean assignment x over all NumVars
// variables.
func (q *Quadratic) Evaluate(x []int) float64 {
	total := q.Constant
	for v, u := range q.Unary {
		total += u[x[v]]
	}
	for _, p := range q.Pairwise {
		total += p.Value(x[p.I], x[p.J])
	}

	return total
}

// IsSubmodular reports whether every pairwise term is submodular within eps.
func (q *Quadratic) IsSubmodular(eps float64) bool {
	for _, p := range q.Pairwise {
		if !p.Submodular(eps) {
			return false
		}
	}

	return true
}

// NumAux returns the number of auxiliary variables.
func (q *Quadratic) NumAux() int { return q.NumVars - q.NumOriginal }

// ToQuadratic reduces e to an equivalent quadratic energy:
// for every assignment x of the original variables,
// min_w q.Evaluate(x, w) == e.Evaluate(x).
//
// Steps:
//  1. Expand kept cliques into monomials.
//  2. Copy constant, unary and pairwise terms verbatim (sorted term order).
//  3. Reduce every negative term of degree ≥ 3 with one auxiliary.
//  4. Reduce positive terms of degree ≥ 3 with the selected Reduction.
//
// The result depends only on the accumulated terms, never on map order.
func (e *Energy) ToQuadratic(r Reduction) *Quadratic {
	if len(e.cliques) > 0 {
		e = e.Expanded()
	}
	q := newQuadratic(e.numVars, e.constant)
	var positive []Term
	for _, t := range e.Terms() {
		switch len(t.Vars) {
		case 1:
			q.AddUnary(t.Vars[0], 0, t.Coef)
		case 2:
			q.AddPair(t.Vars[0], t.Vars[1], 0, 0, 0, t.Coef)
		default:
			if t.Coef < 0 {
				reduceNegative(q, t.Coef, t.Vars)
			} else {
				positive = append(positive, t)
			}
		}
	}
	switch r {
	case ReductionChen:
		eliminatePositive(q, positive)
	default:
		for _, t := range positive {
			reducePositive(q, t.Coef, t.Vars)
		}
	}

	return q
}

// reduceNegative rewrites a·Πx (a < 0) as min_w a·w·(Σx − (d−1)).
func reduceNegative(q *Quadratic, a float64, vars []int) {
	w := q.AddVar()
	q.AddUnary(w, 0, -a*float64(len(vars)-1))
	for _, v := range vars {
		q.AddPair(v, w, 0, 0, 0, a)
	}
}

// reducePositive rewrites a·Πx (a > 0) with ⌊(d−1)/2⌋ auxiliaries:
//
//	a·Πx = a·min_w Σ_i w_i·(c_i·(2i − S1) − 1) + a·S2
//
// where S1 = Σx, S2 = Σ_{j<k} x_j·x_k, and c_i = 1 for the last auxiliary of
// an odd-degree term, 2 otherwise.
func reducePositive(q *Quadratic, a float64, vars []int) {
	d := len(vars)
	m := (d - 1) / 2
	for i := 1; i <= m; i++ {
		c := 2.0
		if d%2 == 1 && i == m {
			c = 1
		}
		w := q.AddVar()
		q.AddUnary(w, 0, a*(c*float64(2*i)-1))
		for _, v := range vars {
			q.AddPair(v, w, 0, 0, 0, -a*c)
		}
	}
	for j := 0; j < d; j++ {
		for k := j + 1; k < d; k++ {
			q.AddPair(vars[j], vars[k], 0, 0, 0, a)
		}
	}
}

// eliminatePositive removes positive terms variable by variable in
// ascending order. For the group H of positive terms whose smallest variable
// is v, with A = Σ_H α_H and one new auxiliary y:
//
//	Σ_H α_H·x_v·x_{H\v} = min_y A·y·x_v + Σ_H α_H·x_{H\v} − Σ_H α_H·y·x_{H\v}
//
// The remainders x_{H\v} are positive, one degree lower and contain only
// variables greater than v; the y-terms are negative and reduced at once.
func eliminatePositive(q *Quadratic, terms []Term) {
	pending := make(map[termKey]float64, len(terms))
	for _, t := range terms {
		pending[keyOf(t.Vars)] += t.Coef
	}
	for v := 0; v < q.NumOriginal && len(pending) > 0; v++ {
		var group []termKey
		for k := range pending {
			if int(k.vars[0]) == v {
				group = append(group, k)
			}
		}
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].less(group[j]) })

		var sum float64
		for _, k := range group {
			sum += pending[k]
		}
		y := q.AddVar()
		q.AddPair(v, y, 0, 0, 0, sum)
		for _, k := range group {
			alpha := pending[k]
			delete(pending, k)
			rest := k.slice()[1:]
			if len(rest) == 2 {
				q.AddPair(rest[0], rest[1], 0, 0, 0, alpha)
			} else {
				pending[keyOf(rest)] += alpha
			}
			reduceNegative(q, -alpha, append(rest, y))
		}
	}
}

// keyOf builds the key of an already sorted, duplicate-free tuple.
func keyOf(vars []int) termKey {
	var k termKey
	k.n = uint8(len(vars))
	for i, v := range vars {
		k.vars[i] = int32(v)
	}

	return k
}
